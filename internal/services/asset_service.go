package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const brandingBucket = "tenant-branding"

// AssetService stores tenant branding assets (logos) in object storage.
// Asset operations are a side channel of tenant configuration: callers log
// failures without failing the surrounding admin action.
type AssetService interface {
	UploadLogo(ctx context.Context, tenantID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	LogoURL(tenantID uuid.UUID, expiry time.Duration) (string, error)
	DeleteLogo(ctx context.Context, tenantID uuid.UUID) error
	EnsureBucket(ctx context.Context) error
}

type assetService struct {
	client *minio.Client
}

func NewAssetService(endpoint, accessKey, secretKey string, useSSL bool) (AssetService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &assetService{client: client}, nil
}

func logoObjectName(tenantID uuid.UUID) string {
	return fmt.Sprintf("logos/%s", tenantID.String())
}

func (s *assetService) UploadLogo(ctx context.Context, tenantID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := logoObjectName(tenantID)
	_, err := s.client.PutObject(ctx, brandingBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *assetService) LogoURL(tenantID uuid.UUID, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(context.Background(), brandingBucket, logoObjectName(tenantID), expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (s *assetService) DeleteLogo(ctx context.Context, tenantID uuid.UUID) error {
	return s.client.RemoveObject(ctx, brandingBucket, logoObjectName(tenantID), minio.RemoveObjectOptions{})
}

func (s *assetService) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, brandingBucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, brandingBucket, minio.MakeBucketOptions{})
	}
	return nil
}
