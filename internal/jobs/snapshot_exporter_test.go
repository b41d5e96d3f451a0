package jobs

import (
	"context"
	"errors"
	"testing"

	"eggmart/internal/models"
	"eggmart/internal/repositories"
	"eggmart/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock archive service
type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockArchiveService) PutSnapshot(ctx context.Context, bucketName string, records []*models.DistributorRecord) (string, error) {
	args := m.Called(ctx, bucketName, records)
	return args.String(0), args.Error(1)
}

func TestRun_ArchivesCurrentList(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewRecordStore(storage.NewMemoryKV(), []*models.DistributorRecord{})
	store.Add(ctx, &models.DistributorRecord{FullName: "a", Phone: "1", Username: "a", Module: models.ModuleOutlets})

	archive := new(MockArchiveService)
	archive.On("EnsureBucketExists", mock.Anything, "eggmart-archive").Return(nil).Once()
	archive.On("PutSnapshot", mock.Anything, "eggmart-archive", mock.MatchedBy(func(records []*models.DistributorRecord) bool {
		return len(records) == 1 && records[0].Username == "a"
	})).Return("distributors/snap.json", nil).Once()

	exporter := NewSnapshotExporter(store, archive, "eggmart-archive")
	require.NoError(t, exporter.Run(ctx))

	archive.AssertExpectations(t)
}

func TestRun_BucketFailureStopsExport(t *testing.T) {
	store := repositories.NewRecordStore(storage.NewMemoryKV(), []*models.DistributorRecord{})

	archive := new(MockArchiveService)
	archive.On("EnsureBucketExists", mock.Anything, "eggmart-archive").Return(errors.New("denied")).Once()

	exporter := NewSnapshotExporter(store, archive, "eggmart-archive")
	assert.Error(t, exporter.Run(context.Background()))

	archive.AssertNotCalled(t, "PutSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_PutFailureIsReturned(t *testing.T) {
	store := repositories.NewRecordStore(storage.NewMemoryKV(), []*models.DistributorRecord{})

	archive := new(MockArchiveService)
	archive.On("EnsureBucketExists", mock.Anything, "eggmart-archive").Return(nil).Once()
	archive.On("PutSnapshot", mock.Anything, "eggmart-archive", mock.Anything).Return("", errors.New("timeout")).Once()

	exporter := NewSnapshotExporter(store, archive, "eggmart-archive")
	assert.Error(t, exporter.Run(context.Background()))
}
