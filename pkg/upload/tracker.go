package upload

import (
	"sync"
)

// FieldState — состояние загрузки одного файлового поля формы.
type FieldState int

const (
	FieldEmpty FieldState = iota
	FieldUploading
	FieldUploaded
	FieldFailed
)

// Tracker отслеживает загрузки файлов по полям открытой формы.
//
// Rule 5: thread-safe — загрузка идет в фоновой горутине, UI читает
// состояние из своей. Повторный выбор файла в поле заменяет предыдущий:
// старый URL сбрасывается до завершения новой загрузки.
type Tracker struct {
	mu     sync.RWMutex
	fields map[string]fieldEntry
}

type fieldEntry struct {
	state    FieldState
	filename string
	url      string
	err      error
}

// NewTracker создает пустой трекер (по одному на открытую форму).
func NewTracker() *Tracker {
	return &Tracker{fields: make(map[string]fieldEntry)}
}

// Start помечает поле как загружающееся. Прежний результат поля
// сбрасывается — форма не должна отправить URL замененного файла.
func (t *Tracker) Start(field, filename string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fields[field] = fieldEntry{state: FieldUploading, filename: filename}
}

// Done сохраняет URL успешно загруженного файла.
func (t *Tracker) Done(field, url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.fields[field]
	e.state = FieldUploaded
	e.url = url
	e.err = nil
	t.fields[field] = e
}

// Fail помечает загрузку поля как неудавшуюся.
func (t *Tracker) Fail(field string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.fields[field]
	e.state = FieldFailed
	e.err = err
	t.fields[field] = e
}

// Prefill выставляет уже существующий URL (редактирование записи).
func (t *Tracker) Prefill(field, url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if url == "" {
		return
	}
	t.fields[field] = fieldEntry{state: FieldUploaded, url: url}
}

// State возвращает состояние поля.
func (t *Tracker) State(field string) FieldState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fields[field].state
}

// URL возвращает URL загруженного файла ("" если загрузка не завершена).
func (t *Tracker) URL(field string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e := t.fields[field]
	if e.state != FieldUploaded {
		return ""
	}
	return e.url
}

// Err возвращает ошибку последней загрузки поля.
func (t *Tracker) Err(field string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fields[field].err
}

// Ready сообщает, можно ли отправлять форму: все обязательные файловые
// поля загружены. Форма с незавершенной обязательной загрузкой не
// отправляется — это проверка на стороне клиента, без похода в сеть.
func (t *Tracker) Ready(required ...string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, field := range required {
		if t.fields[field].state != FieldUploaded {
			return false
		}
	}
	return true
}
