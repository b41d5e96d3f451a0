package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"eggmart/internal/models"
)

// ArchiveService stores point-in-time JSON snapshots of the distributor list
// in object storage. Snapshots are an operational safety net, not part of
// the live persistence path.
type ArchiveService interface {
	EnsureBucketExists(ctx context.Context, bucketName string) error
	PutSnapshot(ctx context.Context, bucketName string, records []*models.DistributorRecord) (string, error)
}

type minioArchive struct {
	client *minio.Client
}

func NewArchiveService(endpoint, accessKey, secretKey string, useSSL bool) (ArchiveService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioArchive{client: client}, nil
}

func (m *minioArchive) EnsureBucketExists(ctx context.Context, bucketName string) error {
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
}

func (m *minioArchive) PutSnapshot(ctx context.Context, bucketName string, records []*models.DistributorRecord) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	objectName := SnapshotObjectName(time.Now().UTC())
	_, err = m.client.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// SnapshotObjectName builds a sortable, collision-free object key for a
// snapshot taken at ts.
func SnapshotObjectName(ts time.Time) string {
	return fmt.Sprintf("distributors/%s-%s.json", ts.Format("20060102T150405Z"), uuid.New().String())
}
