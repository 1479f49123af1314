// Package storage uploads template files to the object store the web
// application serves them from.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/plandoc/fieldex-go/internal/config"
)

var contentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
}

// Bucket is the template bucket, created on first use.
type Bucket struct {
	client   *minio.Client
	name     string
	region   string
	initOnce sync.Once
	initErr  error
}

// New connects to the object store behind cfg.
func New(cfg config.StorageConfig) (*Bucket, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	return &Bucket{client: client, name: bucket, region: cfg.Region}, nil
}

func (b *Bucket) ensure(ctx context.Context) error {
	b.initOnce.Do(func() {
		exists, err := b.client.BucketExists(ctx, b.name)
		if err != nil {
			b.initErr = err
			return
		}
		if exists {
			return
		}
		b.initErr = b.client.MakeBucket(ctx, b.name, minio.MakeBucketOptions{Region: b.region})
	})
	return b.initErr
}

// UploadTemplate uploads one template file and returns its object name. The
// object name is derived from the cleaned file name, so re-uploading a
// template overwrites the previous copy.
func (b *Bucket) UploadTemplate(ctx context.Context, path string) (string, error) {
	if err := b.ensure(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	contentType := contentTypes[ext]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	object := ObjectName(filepath.Base(path))
	if _, err := b.client.FPutObject(ctx, b.name, object, path, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return object, nil
}

// ObjectName normalizes a template file name into a stable object key:
// spaces and punctuation collapse to hyphens while the extension survives.
func ObjectName(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(base) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-") + strings.ToLower(ext)
}
