// Package export сохраняет скачанные с портала файлы (xlsx экспорты
// заказов, бэкордеров, ошибок импорта, шаблоны) в локальный каталог.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/ilkoid/partsdesk/pkg/utils"
)

// Saver пишет блобы в каталог загрузок из конфигурации.
type Saver struct {
	dir     string
	emitter events.Emitter
}

// NewSaver создает Saver. Каталог создается при первом сохранении.
func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

// SetEmitter подключает Emitter фоновых событий (Port & Adapter).
// nil допустим — события просто не отправляются.
func (s *Saver) SetEmitter(e events.Emitter) {
	s.emitter = e
}

// Dir возвращает каталог загрузок.
func (s *Saver) Dir() string {
	return s.dir
}

// Save пишет блоб на диск и возвращает итоговый путь.
//
// Имя берется из Content-Disposition блоба, иначе из fallbackName.
// Имя проходит санацию — заголовок приходит с сервера и не должен
// уметь писать за пределы каталога. Существующий файл не перезатирается:
// к имени добавляется числовой суффикс.
func (s *Saver) Save(blob *api.Blob, fallbackName string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	name := blob.Filename
	if name == "" {
		name = fallbackName
	}
	name = utils.SanitizeFilename(name)

	path := s.uniquePath(name)
	if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if s.emitter != nil {
		s.emitter.Emit(context.Background(), events.Event{
			Type:      events.EventExportSaved,
			Data:      events.ExportSavedData{Path: path, Size: int64(len(blob.Data))},
			Timestamp: time.Now(),
		})
	}
	return path, nil
}

// uniquePath подбирает незанятое имя: report.xlsx, report-1.xlsx, ...
func (s *Saver) uniquePath(name string) string {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	for i := 1; ; i++ {
		candidate := filepath.Join(s.dir, fmt.Sprintf("%s-%d%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
