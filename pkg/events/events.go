// Package events предоставляет интерфейсы для реализации Port & Adapter паттерна.
//
// Это Port (интерфейс) для подписки на фоновые события консоли:
// загрузки файлов, постановку импортов в очередь, сохранение экспортов,
// истечение сессии. Позволяет подключать любые UI (TUI, CLI) без
// изменения библиотечной логики.
//
// # Port & Adapter Pattern
//
//	Port — это интерфейс (Emitter, Subscriber), определённый в библиотеке.
//	Adapter — это реализация интерфейса для конкретного UI.
//
// # Basic Usage
//
//	// В библиотеке (pkg/upload, pkg/importjob):
//	emitter.Emit(ctx, events.Event{Type: events.EventUploadDone, ...})
//
//	// В UI (internal/ui/):
//	sub := emitter.Subscribe()
//	for event := range sub.Events() {
//	    switch event.Type {
//	    case events.EventUploadDone:
//	        ui.markFieldUploaded(event.Data)
//	    }
//	}
//
// # Thread Safety
//
// Все реализации интерфейсов должны быть thread-safe.
//
// # Rule 11: Context Propagation
//
// Emitter.Emit() принимает context.Context для отмены операции.
package events

import (
	"context"
	"time"
)

// EventType представляет тип фонового события консоли.
type EventType string

const (
	// EventUploadStarted отправляется при старте загрузки файла.
	EventUploadStarted EventType = "upload_started"

	// EventUploadDone отправляется когда файл загружен и URL известен.
	EventUploadDone EventType = "upload_done"

	// EventUploadFailed отправляется при ошибке загрузки файла.
	EventUploadFailed EventType = "upload_failed"

	// EventImportQueued отправляется когда импорт поставлен в очередь.
	EventImportQueued EventType = "import_queued"

	// EventExportSaved отправляется когда экспорт сохранен на диск.
	EventExportSaved EventType = "export_saved"

	// EventSessionExpired отправляется при 401 от backend.
	EventSessionExpired EventType = "session_expired"

	// EventError отправляется при прочих фоновых ошибках.
	EventError EventType = "error"
)

// EventData — sealed interface для данных события.
//
// Только типы из пакета events могут реализовать этот интерфейс,
// что обеспечивает compile-time type safety.
type EventData interface {
	eventData()
}

// UploadData содержит данные событий загрузки файла.
type UploadData struct {
	Field    string // поле формы, к которому относится файл
	Filename string
	URL      string // заполнен для EventUploadDone
	Err      error  // заполнен для EventUploadFailed
}

func (UploadData) eventData() {}

// ImportQueuedData содержит данные для EventImportQueued.
type ImportQueuedData struct {
	ImportType string
	JobID      string
	StatusURL  string
}

func (ImportQueuedData) eventData() {}

// ExportSavedData содержит данные для EventExportSaved.
type ExportSavedData struct {
	Path string
	Size int64
}

func (ExportSavedData) eventData() {}

// ErrorData содержит данные для EventError и EventSessionExpired.
type ErrorData struct {
	Err error
}

func (ErrorData) eventData() {}

// Event представляет одно фоновое событие.
//
// Data содержит типизированные данные события (EventData).
// Для каждого EventType существует соответствующий тип данных:
//   - EventUploadStarted / EventUploadDone / EventUploadFailed: UploadData
//   - EventImportQueued: ImportQueuedData
//   - EventExportSaved: ExportSavedData
//   - EventSessionExpired, EventError: ErrorData
type Event struct {
	Type      EventType
	Data      EventData
	Timestamp time.Time
}

// Emitter — это Port для отправки событий.
//
// Emitter инвертирует зависимость: библиотека (pkg/upload, pkg/importjob)
// зависит от этого интерфейса, а не от конкретного UI.
//
// Rule 11: все операции должны уважать context.Context.
type Emitter interface {
	// Emit отправляет событие.
	//
	// Если context отменён, операция должна прерваться.
	Emit(ctx context.Context, event Event)
}

// Subscriber позволяет читать события из канала.
//
// Rule 5: thread-safe операции.
type Subscriber interface {
	// Events возвращает read-only канал событий.
	//
	// Канал закрывается при вызове Close().
	Events() <-chan Event

	// Close закрывает канал событий и освобождает ресурсы.
	Close()
}
