package jobs

import (
	"context"
	"log"

	"eggmart/internal/repositories"
	"eggmart/internal/services"
)

// SnapshotExporter periodically archives the current distributor list to
// object storage.
type SnapshotExporter struct {
	store   repositories.RecordStore
	archive services.ArchiveService
	bucket  string
}

func NewSnapshotExporter(store repositories.RecordStore, archive services.ArchiveService, bucket string) *SnapshotExporter {
	return &SnapshotExporter{store: store, archive: archive, bucket: bucket}
}

// Run takes one snapshot. Failures are returned for the scheduler to log;
// they never affect the live record list.
func (e *SnapshotExporter) Run(ctx context.Context) error {
	if err := e.archive.EnsureBucketExists(ctx, e.bucket); err != nil {
		return err
	}

	records := e.store.List(ctx)
	objectName, err := e.archive.PutSnapshot(ctx, e.bucket, records)
	if err != nil {
		return err
	}

	log.Printf("Archived distributor snapshot %s (%d records)", objectName, len(records))
	return nil
}
