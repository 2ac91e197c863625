package upload

import (
	"context"
	"time"

	"github.com/ilkoid/partsdesk/pkg/events"
)

// eventingUploader — декоратор, отправляющий события жизненного цикла
// загрузки через events.Emitter (Port & Adapter). Сам загрузчик про
// события не знает.
type eventingUploader struct {
	next    Uploader
	emitter events.Emitter
}

var _ Uploader = (*eventingUploader)(nil)

// WithEvents оборачивает Uploader отправкой событий
// EventUploadStarted / EventUploadDone / EventUploadFailed.
//
// nil emitter возвращает исходный Uploader без обертки.
func WithEvents(u Uploader, e events.Emitter) Uploader {
	if e == nil {
		return u
	}
	return &eventingUploader{next: u, emitter: e}
}

func (u *eventingUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	u.emitter.Emit(ctx, events.Event{
		Type:      events.EventUploadStarted,
		Data:      events.UploadData{Filename: filename},
		Timestamp: time.Now(),
	})

	link, err := u.next.Upload(ctx, filename, data)
	if err != nil {
		u.emitter.Emit(ctx, events.Event{
			Type:      events.EventUploadFailed,
			Data:      events.UploadData{Filename: filename, Err: err},
			Timestamp: time.Now(),
		})
		return "", err
	}

	u.emitter.Emit(ctx, events.Event{
		Type:      events.EventUploadDone,
		Data:      events.UploadData{Filename: filename, URL: link},
		Timestamp: time.Now(),
	})
	return link, nil
}
