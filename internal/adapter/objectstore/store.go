// Package objectstore uploads attachment bytes to Cloudinary.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrNotConfigured is returned by Disabled for every call.
var ErrNotConfigured = errors.New("object storage is not configured")

// Attachments of every type are stored verbatim so the public id keeps the
// file extension and Cloudinary never appends a second one.
const resourceType = "raw"

// Store writes file bytes under a key and returns their public URL.
type Store interface {
	Upload(ctx context.Context, key string, content io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore implements Store with the Cloudinary upload API.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
	logger *slog.Logger
}

// NewCloudinaryStore builds a store from a cloudinary:// URL.
func NewCloudinaryStore(cloudinaryURL, folder string, logger *slog.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("parse cloudinary url: %w", err)
	}
	return &CloudinaryStore{api: &cld.Upload, folder: folder, logger: logger}, nil
}

// Upload stores content with key as its public id.
func (s *CloudinaryStore) Upload(ctx context.Context, key string, content io.Reader) (string, error) {
	result, err := s.api.Upload(ctx, content, uploader.UploadParams{
		PublicID:     key,
		Folder:       s.folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if result.Error.Message != "" {
		s.logger.Error("cloudinary rejected upload", slog.String("key", key), slog.String("error", result.Error.Message))
		return "", fmt.Errorf("upload %s: %s", key, result.Error.Message)
	}
	return result.SecureURL, nil
}

// Delete removes the object stored under key.
func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	publicID := key
	if s.folder != "" {
		publicID = path.Join(s.folder, key)
	}
	result, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("delete %s: %s", key, result.Error.Message)
	}
	return nil
}

// Disabled rejects uploads when no storage backend is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return ErrNotConfigured
}

var (
	_ Store = (*CloudinaryStore)(nil)
	_ Store = Disabled{}
)
