// Package storage wraps the MinIO object store used for invoice documents.
package storage

import (
	"bytes"
	"context"
	"time"

	"taller-go/internal/config"
	"taller-go/pkg/log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient is the global MinIO client instance.
var MinioClient *minio.Client

// InitMinIO initializes the MinIO client and makes sure the invoice
// bucket exists.
func InitMinIO(cfg config.MinIOConfig) {
	var err error

	MinioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatal("initializing MinIO client failed", err)
	}
	log.Info("MinIO client initialized")

	ctx := context.Background()
	exists, err := MinioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		log.Fatal("checking MinIO bucket failed", err)
	}
	if !exists {
		if err := MinioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("creating MinIO bucket failed", err)
		}
		log.Infof("bucket '%s' created", cfg.BucketName)
	}
}

// PutObject uploads one document under the given key.
func PutObject(ctx context.Context, bucketName, objectName, contentType string, data []byte) error {
	_, err := MinioClient.PutObject(ctx, bucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// GetPresignedURL generates a time-limited download URL for an object.
func GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := MinioClient.PresignedGetObject(context.Background(), bucketName, objectName, expiry, nil)
	if err != nil {
		log.Errorf("generating presigned URL failed: %s", err)
		return "", err
	}
	return presignedURL.String(), nil
}
