package sample

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spinframework/spin-go-sdk/v2/kv"
)

// RecordsKey is the single slot holding the whole record list as one JSON
// array. The name is kept from the browser build so exported history slots
// stay importable.
const RecordsKey = "clinmind.measurements"

// SpinKVRepository persists the record sequence in a Spin key-value store.
// Every mutation rewrites the whole slot; there is no cross-writer
// atomicity, a single interactive session is assumed.
type SpinKVRepository struct {
	db     *kv.Store
	logger *slog.Logger
}

func NewSpinKVRepository(storeName string, logger *slog.Logger) (*SpinKVRepository, error) {
	db, err := kv.OpenStore(storeName)
	if err != nil {
		logger.Error("Failed to open Spin KV store", "error", err)
		return nil, ErrKVStoreNotAvailable
	}

	return &SpinKVRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *SpinKVRepository) IsReady() bool {
	if r.logger == nil {
		fmt.Println("Logger of SpinKVRepository is not initialized")
		return false
	}

	if r.db == nil {
		r.logger.Error("Spin KV store is not initialized")
		return false
	}

	return true
}

func (r *SpinKVRepository) Close() error {
	if r.db == nil {
		return nil
	}

	r.db.Close()
	r.logger.Info("Spin KV store closed successfully")
	return nil
}

// ListAll reads the whole slot. A missing key or a payload that does not
// unmarshal into a record list reads back as empty, never as an error.
func (r *SpinKVRepository) ListAll(ctx context.Context) ([]Record, error) {
	defer ctx.Done()

	if !r.IsReady() {
		return nil, ErrKVStoreNotAvailable
	}

	exists, err := r.db.Exists(RecordsKey)
	if err != nil {
		r.logger.Warn("Failed to check record slot, treating as empty", "error", err)
		return []Record{}, nil
	}

	if !exists {
		r.logger.Debug("Record slot is absent, treating as empty")
		return []Record{}, nil
	}

	jsonBlob, err := r.db.Get(RecordsKey)
	if err != nil {
		r.logger.Warn("Failed to read record slot, treating as empty", "error", err)
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(jsonBlob, &records); err != nil {
		r.logger.Warn("Record slot holds malformed JSON, treating as empty", "error", err)
		return []Record{}, nil
	}

	return records, nil
}

func (r *SpinKVRepository) Save(ctx context.Context, input SaveInput) (*Record, error) {
	records, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	record, err := BuildRecord(input, records, time.Now())
	if err != nil {
		return nil, err
	}

	if err := r.setAll(ctx, append(records, *record)); err != nil {
		return nil, err
	}

	r.logger.Debug("Record added to Spin KV", "sampleId", record.SampleID)
	return record, nil
}

func (r *SpinKVRepository) DeleteByID(ctx context.Context, sampleID string, createdAt time.Time) error {
	records, err := r.ListAll(ctx)
	if err != nil {
		return err
	}

	index := -1
	for i := range records {
		if records[i].MatchesIdentity(sampleID, createdAt) {
			index = i
			break
		}
	}

	if index < 0 {
		r.logger.Debug("No record matched for deletion", "sampleId", sampleID)
		return nil
	}

	next := append(records[:index], records[index+1:]...)
	if err := r.setAll(ctx, next); err != nil {
		return err
	}

	r.logger.Info("Record deleted from Spin KV", "sampleId", sampleID)
	return nil
}

// setAll rewrites the whole slot. Write failures abort the triggering
// operation; reads stay lenient.
func (r *SpinKVRepository) setAll(ctx context.Context, records []Record) error {
	defer ctx.Done()

	if !r.IsReady() {
		return ErrKVStoreNotAvailable
	}

	jsonBlob, err := json.Marshal(records)
	if err != nil {
		r.logger.Error("Failed to marshal records", "error", err)
		return err
	}

	if err := r.db.Set(RecordsKey, jsonBlob); err != nil {
		r.logger.Error("Failed to store records in Spin KV", "error", err)
		return err
	}

	return nil
}
