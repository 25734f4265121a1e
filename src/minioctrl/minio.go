package minioctrl

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	TranslatedResourcesBucket = "translated-resources"
)

var contentTypes = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
}

// Config selects the object store that finished artifacts are uploaded to.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// Region skips the bucket location lookup when set.
	Region string
}

type MinioService struct {
	client *minio.Client
}

func NewMinioService(cfg Config) (*MinioService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioService{
		client: client,
	}, nil
}

func (s *MinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

func (s *MinioService) PutObject(ctx context.Context, bucketName, objectName string, data []byte) error {
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, bucketName, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	return nil
}

// UploadArtifact stores a translated file under prefix and returns its
// location in bucket/object form.
func (s *MinioService) UploadArtifact(ctx context.Context, bucketName, prefix, filePath string, data []byte) (string, error) {
	if err := s.EnsureBucketExists(ctx, bucketName); err != nil {
		return "", err
	}

	objectName := ObjectName(prefix, filePath)
	if err := s.PutObject(ctx, bucketName, objectName, data); err != nil {
		return "", err
	}
	return bucketName + "/" + objectName, nil
}

// ObjectName joins prefix and the base name of filePath with slashes.
func ObjectName(prefix, filePath string) string {
	name := filepath.Base(filePath)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func ContentType(objectName string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(objectName))]; ok {
		return ct
	}
	return "application/octet-stream"
}
