// Package upload загружает файлы форм (картинки баннеров, вложения CMS)
// и отслеживает состояние загрузки по полям формы.
//
// Два режима, выбираются конфигом:
//   - portal: файл уходит на backend (/azure/upload), URL отдает backend
//   - s3: файл кладется напрямую в S3-совместимое хранилище (minio)
//
// Картинки перед загрузкой уменьшаются до max_width из конфига.
package upload

import (
	"context"
	"fmt"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/config"
)

// Uploader — интерфейс загрузчика файлов (Rule 9: мокается в тестах).
type Uploader interface {
	// Upload загружает файл и возвращает публичный URL.
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// NewFromConfig создает Uploader по режиму из конфигурации.
func NewFromConfig(cfg config.UploadConfig, imgCfg config.ImageProcConfig, apiClient *api.Client) (Uploader, error) {
	switch cfg.Mode {
	case "portal":
		return NewPortalUploader(apiClient, imgCfg), nil
	case "s3":
		return NewS3Uploader(cfg.S3, imgCfg)
	default:
		return nil, fmt.Errorf("unknown upload mode: %q", cfg.Mode)
	}
}
