package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ilkoid/partsdesk/pkg/config"
	"github.com/ilkoid/partsdesk/pkg/utils"
)

// S3Uploader кладет файлы напрямую в S3-совместимое хранилище.
//
// Используется, когда у консоли есть прямой доступ к bucket портала и
// гонять файл через backend незачем.
type S3Uploader struct {
	api       *minio.Client
	bucket    string
	publicURL string
	maxWidth  int
	quality   int
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader создает клиент, используя наш конфиг.
func NewS3Uploader(cfg config.S3Config, imgCfg config.ImageProcConfig) (*S3Uploader, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	imgCfg = imgCfg.GetDefaults()
	return &S3Uploader{
		api:       minioClient,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		maxWidth:  imgCfg.MaxWidth,
		quality:   imgCfg.Quality,
	}, nil
}

// Upload кладет файл в bucket и возвращает публичный URL.
//
// Ключ объекта: cms/<дата>/<имя файла> — имя файла проходит санацию,
// чтобы пользовательское имя не превратилось в обход путей.
//
// Rule 11: context.Context propagation for cancellation support.
func (u *S3Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	data = maybeResize(filename, data, u.maxWidth, u.quality)

	key := fmt.Sprintf("cms/%s/%s", time.Now().UTC().Format("2006-01-02"), utils.SanitizeFilename(filename))

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.api.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s/%s/%s", u.api.EndpointURL().Host, u.bucket, key), nil
}
