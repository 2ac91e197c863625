// Package history ведет локальный журнал действий оператора в SQLite.
//
// Backend не отдает аудит мутаций, а при разборе инцидентов важно знать,
// кто и когда менял дилера или удалял баннер с этой машины. Журнал
// локальный: каждая успешная мутация пишется одной строкой.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry — одна запись журнала действий.
type Entry struct {
	ID       int64
	At       time.Time
	Actor    string // email залогиненного администратора
	Resource string // "dealers", "banners", ...
	Action   string // "create", "update", "delete", "status", "import"
	TargetID string // id записи на портале, может быть ""
	Detail   string // человекочитаемое описание
}

// Log — журнал поверх локальной SQLite базы.
//
// Rule 5: *sql.DB сам по себе безопасен для конкурентного доступа.
type Log struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS actions (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	at        TEXT NOT NULL,
	actor     TEXT NOT NULL,
	resource  TEXT NOT NULL,
	action    TEXT NOT NULL,
	target_id TEXT NOT NULL DEFAULT '',
	detail    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_actions_at ON actions(at);
`

// Open открывает (или создает) базу журнала по пути из конфигурации.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Record пишет одну запись. Время выставляется здесь (UTC).
func (l *Log) Record(ctx context.Context, e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO actions (at, actor, resource, action, target_id, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		at.Format(time.RFC3339), e.Actor, e.Resource, e.Action, e.TargetID, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// Recent возвращает последние записи, новые первыми.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, at, actor, resource, action, target_id, detail FROM actions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Actor, &e.Resource, &e.Action, &e.TargetID, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close закрывает базу.
func (l *Log) Close() error {
	return l.db.Close()
}
