package report

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestReportRepository() *InMemoryRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewInMemoryRepository(logger)
}

func TestInMemoryRepository_AddAndGetByID(t *testing.T) {
	ctx := context.Background()
	repository := newTestReportRepository()
	assert.True(t, repository.IsReady())

	historyReport := &Report{ID: "history-p7d-2026-03-15", Name: "Measurement history P7D", Total: 2}
	assert.NoError(t, repository.Add(ctx, historyReport))

	found, err := repository.GetByID(ctx, historyReport.ID)
	assert.NoError(t, err)
	assert.Equal(t, historyReport.Name, found.Name)
	assert.Equal(t, historyReport.Total, found.Total)
}

func TestInMemoryRepository_GetByIDMissing(t *testing.T) {
	repository := newTestReportRepository()

	_, err := repository.GetByID(context.Background(), "history-p7d-1999-01-01")
	assert.Error(t, err)
}

func TestInMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repository := newTestReportRepository()

	for _, id := range []string{"history-p1d-2026-03-13", "history-p1d-2026-03-14", "history-p1d-2026-03-15"} {
		assert.NoError(t, repository.Add(ctx, &Report{ID: id, Name: id}))
	}

	collection, err := repository.List(ctx, 0, 2)
	assert.NoError(t, err)
	assert.Len(t, collection.Items, 2)
	assert.Equal(t, "history-p1d-2026-03-13", collection.Items[0].ID)
	assert.Equal(t, 3, collection.Pagination.Total)

	rest, err := repository.List(ctx, 2, 2)
	assert.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.Equal(t, "history-p1d-2026-03-15", rest.Items[0].ID)
}

func TestInMemoryRepository_UpdateMergesExisting(t *testing.T) {
	ctx := context.Background()
	repository := newTestReportRepository()

	original := &Report{ID: "history-p7d-2026-03-15", Name: "Measurement history P7D", Total: 2}
	assert.NoError(t, repository.Add(ctx, original))

	revised := &Report{ID: original.ID, Total: 5}
	assert.NoError(t, repository.Update(ctx, revised))

	found, err := repository.GetByID(ctx, original.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, found.Total)
	assert.Equal(t, "Measurement history P7D", found.Name, "missing fields filled from the stored report")
}

func TestInMemoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repository := newTestReportRepository()

	historyReport := &Report{ID: "history-p7d-2026-03-15"}
	assert.NoError(t, repository.Add(ctx, historyReport))
	assert.NoError(t, repository.Delete(ctx, historyReport.ID))

	_, err := repository.GetByID(ctx, historyReport.ID)
	assert.Error(t, err)

	// Deleting a missing report is a no-op.
	assert.NoError(t, repository.Delete(ctx, "history-p7d-1999-01-01"))
}
