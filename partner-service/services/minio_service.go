package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"path"
	"strings"

	"elevatia-backend/shared/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// LogoService stores organization logos in MinIO, one folder per tenant.
type LogoService struct {
	client     *minio.Client
	bucketName string
	publicBase string
}

func NewLogoService() (*LogoService, error) {
	cfg := config.GetConfig()

	parsedURL, err := url.Parse(cfg.MinIOServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MinIO endpoint: %v", err)
	}

	endpoint := parsedURL.Host
	useSSL := cfg.MinIOUseSSL

	log.Printf("🔗 Connecting to MinIO: %s (SSL: %v)", endpoint, useSSL)

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIORootUser, cfg.MinIORootPassword, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	service := &LogoService{
		client:     minioClient,
		bucketName: cfg.MinIOBucketName,
		publicBase: strings.TrimSuffix(cfg.MinIOServerURL, "/"),
	}

	if err := service.initializeBucket(); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *LogoService) initializeBucket() error {
	ctx := context.Background()

	log.Printf("🪣 Checking bucket: %s", s.bucketName)

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("✅ MinIO bucket '%s' created successfully", s.bucketName)
	} else {
		log.Printf("✅ MinIO bucket '%s' already exists", s.bucketName)
	}

	return nil
}

// UploadLogo stores a logo under the organization's folder and returns the
// public URL to store on the organization record. Re-uploads overwrite:
// the object key depends only on the organization and the file extension.
func (s *LogoService) UploadLogo(ctx context.Context, orgID uuid.UUID, file io.Reader, fileName, contentType string, fileSize int64) (string, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".png"
	}
	objectKey := fmt.Sprintf("%s/logo%s", orgID.String(), ext)

	log.Printf("⬆️ Uploading logo to: %s/%s (size: %d bytes)", s.bucketName, objectKey, fileSize)

	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, file, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %v", err)
	}

	log.Printf("✅ Logo uploaded for organization %s", orgID)
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucketName, objectKey), nil
}

// RemoveLogos deletes every stored logo for an organization.
func (s *LogoService) RemoveLogos(ctx context.Context, orgID uuid.UUID) error {
	prefix := orgID.String() + "/"

	objectCh := s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return fmt.Errorf("failed to list logos: %v", object.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucketName, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to delete %s: %v", object.Key, err)
		}
		log.Printf("🗑️ Deleted object: %s", object.Key)
	}

	return nil
}

// TestConnection verifies the MinIO endpoint is reachable.
func (s *LogoService) TestConnection() error {
	ctx := context.Background()

	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %v", err)
	}

	log.Printf("✅ MinIO connection successful. Found %d buckets", len(buckets))
	return nil
}
