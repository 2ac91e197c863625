package upload

import (
	"context"
	"errors"
	"testing"

	"github.com/ilkoid/partsdesk/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	return s.url, s.err
}

// TestWithEventsEmitsStartedAndDone verifies the decorator reports the
// upload lifecycle through the emitter.
func TestWithEventsEmitsStartedAndDone(t *testing.T) {
	emitter := events.NewChanEmitter(10)
	u := WithEvents(&stubUploader{url: "https://cdn.test/banner.png"}, emitter)

	url, err := u.Upload(context.Background(), "banner.png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/banner.png", url)

	sub := emitter.Subscribe()
	started := <-sub.Events()
	assert.Equal(t, events.EventUploadStarted, started.Type)
	done := <-sub.Events()
	assert.Equal(t, events.EventUploadDone, done.Type)
	data, ok := done.Data.(events.UploadData)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.test/banner.png", data.URL)
}

// TestWithEventsEmitsFailed verifies errors reach subscribers.
func TestWithEventsEmitsFailed(t *testing.T) {
	emitter := events.NewChanEmitter(10)
	u := WithEvents(&stubUploader{err: errors.New("boom")}, emitter)

	_, err := u.Upload(context.Background(), "banner.png", []byte("img"))
	require.Error(t, err)

	sub := emitter.Subscribe()
	<-sub.Events() // started
	failed := <-sub.Events()
	assert.Equal(t, events.EventUploadFailed, failed.Type)
}

// TestWithEventsNilEmitter verifies a nil emitter returns the uploader as is.
func TestWithEventsNilEmitter(t *testing.T) {
	base := &stubUploader{url: "u"}
	assert.Same(t, Uploader(base), WithEvents(base, nil))
}
