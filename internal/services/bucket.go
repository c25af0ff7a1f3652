package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/logger"
)

// Upload folders. Object paths are <folder>/<filename>.
const (
	FolderImages        = "images"
	FolderPDFs          = "pdf"
	FolderProfileImages = "profile-images"
	FolderNotePDFs      = "notes_pdfs"
)

type BucketService interface {
	UploadStream(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
	DeleteObject(ctx context.Context, objectPath string) error
	GetPublicURL(objectPath string) string
	Close() error
}

type bucketService struct {
	log    *logger.Logger
	client *storage.Client
	cfg    config.BucketConfig
}

func NewBucketService(ctx context.Context, cfg config.BucketConfig, log *logger.Logger) (BucketService, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET_NAME")
	}
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsFile)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("Failed to create storage client: %w", err)
	}
	return &bucketService{
		log:    log.With("service", "BucketService"),
		client: client,
		cfg:    cfg,
	}, nil
}

// UploadStream copies r into the bucket without buffering the whole payload
// in memory. The returned value is the object's public URL.
func (b *bucketService) UploadStream(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	objectPath := fmt.Sprintf("%s/%s", folder, filename)
	w := b.client.Bucket(b.cfg.Name).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("Failed to stream object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Failed to finalize object %s: %w", objectPath, err)
	}
	return b.GetPublicURL(objectPath), nil
}

func (b *bucketService) DeleteObject(ctx context.Context, objectPath string) error {
	if err := b.client.Bucket(b.cfg.Name).Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("Failed to delete object %s: %w", objectPath, err)
	}
	return nil
}

func (b *bucketService) GetPublicURL(objectPath string) string {
	if b.cfg.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cfg.CDNDomain, objectPath)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.cfg.Name, objectPath)
}

func (b *bucketService) Close() error {
	return b.client.Close()
}
