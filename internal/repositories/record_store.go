package repositories

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"eggmart/internal/models"
	"eggmart/internal/storage"
)

// RecordsKey is the single storage key holding the distributor list as a
// JSON array.
const RecordsKey = "eggmart:distributors"

// RecordStore keeps the ordered distributor list in memory and mirrors it to
// the KV backend after every mutation. Reads never fail: a missing or
// unparsable stored value falls back to the seed list. Writes are
// best-effort and only logged on failure.
type RecordStore interface {
	List(ctx context.Context) []*models.DistributorRecord
	Add(ctx context.Context, rec *models.DistributorRecord)
	Remove(ctx context.Context, id int64) bool
	Reload(ctx context.Context)
}

type recordStore struct {
	mu      sync.Mutex
	kv      storage.KV
	seed    []*models.DistributorRecord
	records []*models.DistributorRecord
	loaded  bool
}

// NewRecordStore creates a store over kv. The seed records are used whenever
// no persisted state can be read; a nil seed selects DefaultSeed, while an
// empty non-nil slice seeds an empty list.
func NewRecordStore(kv storage.KV, seed []*models.DistributorRecord) RecordStore {
	return &recordStore{kv: kv, seed: seed}
}

// DefaultSeed is the record list used when nothing has been persisted yet
// and no seed is configured.
func DefaultSeed() []*models.DistributorRecord {
	return []*models.DistributorRecord{
		{
			ID:       1,
			FullName: "Head Office",
			Phone:    "0000000000",
			Username: "headoffice",
			Module:   models.ModuleDailySales,
		},
	}
}

func (s *recordStore) List(ctx context.Context) []*models.DistributorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	out := make([]*models.DistributorRecord, len(s.records))
	for i, rec := range s.records {
		copied := *rec
		out[i] = &copied
	}
	return out
}

// Add assigns the next id, stamps the creation time, and prepends rec so the
// list stays newest-first.
func (s *recordStore) Add(ctx context.Context, rec *models.DistributorRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	rec.ID = s.nextIDLocked()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	copied := *rec
	s.records = append([]*models.DistributorRecord{&copied}, s.records...)
	s.saveLocked(ctx)
}

// Remove filters out the record with the given id, leaving the order and ids
// of the surviving records untouched. It reports whether a record matched.
func (s *recordStore) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	kept := s.records[:0]
	removed := false
	for _, rec := range s.records {
		if rec.ID == id {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return false
	}
	s.records = kept
	s.saveLocked(ctx)
	return true
}

// Reload drops the in-memory list and re-reads it from the backend on the
// next access.
func (s *recordStore) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.loaded = false
}

func (s *recordStore) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.kv.Get(ctx, RecordsKey)
	if err != nil {
		if err != storage.ErrNotFound {
			log.Printf("WARN: failed to read distributor records, seeding defaults: %v", err)
		}
		s.records = s.seedCopy()
		return
	}

	var records []*models.DistributorRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("WARN: stored distributor records are unparsable, seeding defaults: %v", err)
		s.records = s.seedCopy()
		return
	}
	s.records = records
}

func (s *recordStore) saveLocked(ctx context.Context) {
	data, err := json.Marshal(s.records)
	if err != nil {
		log.Printf("WARN: failed to serialize distributor records: %v", err)
		return
	}
	if err := s.kv.Set(ctx, RecordsKey, data, 0); err != nil {
		log.Printf("WARN: failed to persist distributor records: %v", err)
	}
}

func (s *recordStore) nextIDLocked() int64 {
	var max int64
	for _, rec := range s.records {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max + 1
}

func (s *recordStore) seedCopy() []*models.DistributorRecord {
	seed := s.seed
	if seed == nil {
		seed = DefaultSeed()
	}
	out := make([]*models.DistributorRecord, len(seed))
	for i, rec := range seed {
		copied := *rec
		out[i] = &copied
	}
	return out
}
