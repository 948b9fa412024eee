package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spinframework/spin-go-sdk/v2/kv"

	"github.com/clinmind/samplelog/response"
)

var ErrKVStoreNotAvailable = fmt.Errorf("Spin KV store is not available")

// SpinKVRepository stores one report per key, unlike the sample store's
// single-slot layout; reports are independently addressable summaries.
type SpinKVRepository struct {
	db     *kv.Store
	logger *slog.Logger
}

func NewSpinKVRepository(storeName string, logger *slog.Logger) (*SpinKVRepository, error) {
	db, err := kv.OpenStore(storeName)
	if err != nil {
		logger.Error("Failed to open Spin KV store", "error", err)
		return nil, err
	}

	return &SpinKVRepository{
		db:     db,
		logger: logger,
	}, nil
}

// -- Component interface implementation --

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

// -- Repository interface implementation --

func (r *SpinKVRepository) List(ctx context.Context, offset int, limit int) (*Collection, error) {
	defer ctx.Done()

	if !r.IsReady() {
		return nil, ErrKVStoreNotAvailable
	}

	keys, err := r.db.GetKeys()
	if err != nil {
		r.logger.Error("Failed to retrieve keys from Spin KV", "error", err)
		return nil, err
	}

	if limit <= 0 || limit > len(keys) {
		limit = len(keys)
	}

	if offset < 0 || offset >= len(keys) {
		offset = 0
	}

	if offset+limit > len(keys) {
		limit = len(keys) - offset
	}

	reports := make([]Report, 0, limit)
	for i := offset; i < offset+limit; i++ {
		report, err := r.GetByID(ctx, keys[i])
		if err != nil {
			r.logger.Error("Failed to get report by ID", "id", keys[i], "error", err)
			continue
		}

		reports = append(reports, *report)
	}

	pagination := response.NewPagination(offset, limit, len(keys))
	return NewReportListCollection(reports, pagination), nil
}

func (r *SpinKVRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	defer ctx.Done()

	if !r.IsReady() {
		return nil, ErrKVStoreNotAvailable
	}

	jsonBlob, err := r.db.Get(id)
	if err != nil {
		r.logger.Error("Failed to get report by ID", "id", id, "error", err)
		return nil, err
	}

	if jsonBlob == nil {
		r.logger.Warn("Report not found", "id", id)
		return nil, fmt.Errorf("report with ID %s not found", id)
	}

	report := &Report{}
	if err := json.Unmarshal(jsonBlob, report); err != nil {
		r.logger.Error("Failed to unmarshal report JSON", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal report with ID %s: %w", id, err)
	}

	return report, nil
}

func (r *SpinKVRepository) Add(ctx context.Context, report *Report) error {
	defer ctx.Done()

	if !r.IsReady() {
		return ErrKVStoreNotAvailable
	}

	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	jsonBlob, err := json.Marshal(report)
	if err != nil {
		r.logger.Error("Failed to marshal report", "error", err)
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := r.db.Set(report.ID, jsonBlob); err != nil {
		r.logger.Error("Failed to add report to Spin KV store", "id", report.ID, "error", err)
		return fmt.Errorf("failed to add report with ID %s: %w", report.ID, err)
	}

	r.logger.Debug("Added report to Spin KV store", "id", report.ID)
	return nil
}

func (r *SpinKVRepository) Update(ctx context.Context, report *Report) error {
	defer ctx.Done()

	if !r.IsReady() {
		return ErrKVStoreNotAvailable
	}

	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	existingReport, err := r.GetByID(ctx, report.ID)
	if err != nil {
		r.logger.Error("Failed to get existing report for update", "id", report.ID, "error", err)
		return fmt.Errorf("failed to get existing report with ID %s: %w", report.ID, err)
	}

	if existingReport != nil && existingReport.ID == report.ID {
		report.Merge(existingReport)
	}

	jsonBlob, err := json.Marshal(report)
	if err != nil {
		r.logger.Error("Failed to marshal report", "error", err)
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := r.db.Set(report.ID, jsonBlob); err != nil {
		r.logger.Error("Failed to update report in Spin KV store", "id", report.ID, "error", err)
		return fmt.Errorf("failed to update report with ID %s: %w", report.ID, err)
	}

	r.logger.Debug("Updated report in Spin KV store", "id", report.ID)
	return nil
}

func (r *SpinKVRepository) Delete(ctx context.Context, id string) error {
	defer ctx.Done()

	if !r.IsReady() {
		return ErrKVStoreNotAvailable
	}

	if id == "" {
		return fmt.Errorf("report ID cannot be empty")
	}

	if err := r.db.Delete(id); err != nil {
		r.logger.Error("Failed to delete report from Spin KV store", "id", id, "error", err)
		return fmt.Errorf("failed to delete report with ID %s: %w", id, err)
	}

	r.logger.Debug("Deleted report from Spin KV store", "id", id)
	return nil
}
