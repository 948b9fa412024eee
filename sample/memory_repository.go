package sample

import (
	"context"
	"log/slog"
	"time"
)

// InMemoryRepository keeps records in process memory. It backs tests and
// local report-builder runs; semantics mirror the KV repository.
type InMemoryRepository struct {
	records []Record
	logger  *slog.Logger
	now     func() time.Time
}

func NewInMemoryRepository(logger *slog.Logger) *InMemoryRepository {
	return &InMemoryRepository{
		records: []Record{},
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock swaps the timestamp source, so tests can save records in the
// past.
func (r *InMemoryRepository) WithClock(now func() time.Time) *InMemoryRepository {
	r.now = now
	return r
}

func (r *InMemoryRepository) IsReady() bool {
	return r.records != nil
}

func (r *InMemoryRepository) Close() error {
	r.records = []Record{}
	return nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]Record, error) {
	defer ctx.Done()

	records := make([]Record, len(r.records))
	copy(records, r.records)
	return records, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, input SaveInput) (*Record, error) {
	defer ctx.Done()

	record, err := BuildRecord(input, r.records, r.now())
	if err != nil {
		return nil, err
	}

	r.records = append(r.records, *record)
	return record, nil
}

func (r *InMemoryRepository) DeleteByID(ctx context.Context, sampleID string, createdAt time.Time) error {
	defer ctx.Done()

	for i := range r.records {
		if r.records[i].MatchesIdentity(sampleID, createdAt) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}

	return nil
}
