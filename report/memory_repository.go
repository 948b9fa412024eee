package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clinmind/samplelog/response"
)

// InMemoryRepository keeps reports in process memory, for tests and local
// report-builder runs.
type InMemoryRepository struct {
	reports map[string]*Report
	order   []string
	logger  *slog.Logger
}

func NewInMemoryRepository(logger *slog.Logger) *InMemoryRepository {
	return &InMemoryRepository{
		reports: make(map[string]*Report),
		order:   []string{},
		logger:  logger,
	}
}

func (r *InMemoryRepository) IsReady() bool {
	return r.reports != nil
}

func (r *InMemoryRepository) Close() error {
	r.reports = make(map[string]*Report)
	r.order = []string{}
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context, offset int, limit int) (*Collection, error) {
	defer ctx.Done()

	if limit <= 0 || limit > len(r.order) {
		limit = len(r.order)
	}

	if offset < 0 || offset >= len(r.order) {
		offset = 0
	}

	if offset+limit > len(r.order) {
		limit = len(r.order) - offset
	}

	reports := make([]Report, 0, limit)
	for i := offset; i < offset+limit; i++ {
		if report, ok := r.reports[r.order[i]]; ok {
			reports = append(reports, *report)
		}
	}

	pagination := response.NewPagination(offset, limit, len(r.order))
	return NewReportListCollection(reports, pagination), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	defer ctx.Done()

	report, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("report with ID %s not found", id)
	}

	copied := *report
	return &copied, nil
}

func (r *InMemoryRepository) Add(ctx context.Context, report *Report) error {
	defer ctx.Done()

	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if _, exists := r.reports[report.ID]; !exists {
		r.order = append(r.order, report.ID)
	}

	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, report *Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if existing, err := r.GetByID(ctx, report.ID); err == nil {
		report.Merge(existing)
	}

	return r.Add(ctx, report)
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	defer ctx.Done()

	if _, ok := r.reports[id]; !ok {
		return nil
	}

	delete(r.reports, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
