package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/ilkoid/partsdesk/pkg/api"
	"github.com/ilkoid/partsdesk/pkg/config"
	"github.com/ilkoid/partsdesk/pkg/utils"
)

// PortalUploader загружает файлы через backend (/azure/upload).
// Backend сам кладет файл в хранилище и возвращает публичный URL.
type PortalUploader struct {
	api      *api.Client
	maxWidth int
	quality  int
}

var _ Uploader = (*PortalUploader)(nil)

// NewPortalUploader создает загрузчик через backend.
func NewPortalUploader(apiClient *api.Client, imgCfg config.ImageProcConfig) *PortalUploader {
	imgCfg = imgCfg.GetDefaults()
	return &PortalUploader{
		api:      apiClient,
		maxWidth: imgCfg.MaxWidth,
		quality:  imgCfg.Quality,
	}
}

// Upload отправляет файл на /azure/upload и возвращает URL из data[0].url.
func (u *PortalUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	data = maybeResize(filename, data, u.maxWidth, u.quality)

	var resp api.ItemResponse[[]api.UploadedFile]
	if err := u.api.PostMultipart(ctx, "azure_upload", "/azure/upload", "file", filename, data, &resp); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("upload %s: backend returned no url", filename)
	}
	return resp.Data[0].URL, nil
}

// maybeResize уменьшает картинку до maxWidth. Не-картинки (xlsx, pdf)
// и файлы, которые не удалось декодировать, уходят как есть.
func maybeResize(filename string, data []byte, maxWidth int, quality int) []byte {
	if maxWidth == 0 || !isImage(filename) {
		return data
	}
	resized, err := utils.ResizeImage(data, maxWidth, quality)
	if err != nil {
		return data
	}
	return resized
}

func isImage(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
