package sample

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRepository() *InMemoryRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewInMemoryRepository(logger)
}

func TestBuildRecord(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

	testCases := []struct {
		name           string
		input          SaveInput
		existing       []Record
		expectedID     string
		expectedStatus Status
		expectedErr    error
	}{
		{
			name:           "classifies from dimensions",
			input:          SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30},
			expectedID:     "4827-A",
			expectedStatus: StatusOK,
		},
		{
			name:           "keeps caller supplied id",
			input:          SaveInput{SampleID: "LAB-99", HeightMm: 15, WidthMm: 25, LengthMm: 30},
			expectedID:     "LAB-99",
			expectedStatus: StatusOutOfRange,
		},
		{
			name:           "valid override replaces computed status",
			input:          SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30, StatusOverride: StatusWarning},
			expectedID:     "4827-A",
			expectedStatus: StatusWarning,
		},
		{
			name:        "invalid override is rejected",
			input:       SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30, StatusOverride: Status("Approved")},
			expectedErr: ErrInvalidStatus,
		},
		{
			name:        "NaN dimension is rejected",
			input:       SaveInput{HeightMm: math.NaN(), WidthMm: 25, LengthMm: 30},
			expectedErr: ErrNonFiniteDimension,
		},
		{
			name:        "infinite dimension is rejected",
			input:       SaveInput{HeightMm: 10, WidthMm: math.Inf(1), LengthMm: 30},
			expectedErr: ErrNonFiniteDimension,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := BuildRecord(tc.input, tc.existing, now)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, record)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedID, record.SampleID)
			assert.Equal(t, tc.expectedStatus, record.Status)
			assert.Equal(t, now, record.CreatedAt)
		})
	}
}

func TestInMemoryRepository_SaveAndListAll(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()
	assert.True(t, repository.IsReady())

	saved, err := repository.Save(ctx, SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30})
	assert.NoError(t, err)
	assert.Equal(t, "4827-A", saved.SampleID)
	assert.Equal(t, StatusOK, saved.Status)
	assert.False(t, saved.CreatedAt.IsZero())

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, *saved, records[0])
}

func TestInMemoryRepository_ListAllIsACopy(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()

	_, err := repository.Save(ctx, SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30})
	assert.NoError(t, err)

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	records[0].SampleID = "mutated"

	fresh, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "4827-A", fresh[0].SampleID)
}

func TestInMemoryRepository_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()

	inputs := []SaveInput{
		{HeightMm: 10, WidthMm: 25, LengthMm: 30},
		{HeightMm: 7.5, WidthMm: 22, LengthMm: 28},
		{HeightMm: 15, WidthMm: 25, LengthMm: 30},
	}
	for _, input := range inputs {
		_, err := repository.Save(ctx, input)
		assert.NoError(t, err)
	}

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "4827-A", records[0].SampleID)
	assert.Equal(t, "4827-B", records[1].SampleID)
	assert.Equal(t, "4827-C", records[2].SampleID)
}

func TestInMemoryRepository_IDWrapsAroundAfter26Saves(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()

	for i := 0; i < 27; i++ {
		_, err := repository.Save(ctx, SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30})
		assert.NoError(t, err)
	}

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 27)
	assert.Equal(t, "4827-Z", records[25].SampleID)
	assert.Equal(t, records[0].SampleID, records[26].SampleID)
}

func TestInMemoryRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()

	first, err := repository.Save(ctx, SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30})
	assert.NoError(t, err)
	second, err := repository.Save(ctx, SaveInput{HeightMm: 7.5, WidthMm: 22, LengthMm: 28})
	assert.NoError(t, err)

	err = repository.DeleteByID(ctx, first.SampleID, first.CreatedAt)
	assert.NoError(t, err)

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, second.SampleID, records[0].SampleID)
}

func TestInMemoryRepository_DeleteMissingRecordIsNoOp(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()

	saved, err := repository.Save(ctx, SaveInput{HeightMm: 10, WidthMm: 25, LengthMm: 30})
	assert.NoError(t, err)

	// Same ID, different timestamp: identity requires both to match.
	err = repository.DeleteByID(ctx, saved.SampleID, saved.CreatedAt.Add(time.Hour))
	assert.NoError(t, err)

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestInMemoryRepository_DeleteRemovesFirstMatchOnly(t *testing.T) {
	ctx := context.Background()
	repository := newTestRepository()
	stamp := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)
	repository.now = func() time.Time { return stamp }

	_, err := repository.Save(ctx, SaveInput{SampleID: "DUP-1", HeightMm: 10, WidthMm: 25, LengthMm: 30})
	assert.NoError(t, err)
	_, err = repository.Save(ctx, SaveInput{SampleID: "DUP-1", HeightMm: 7.5, WidthMm: 22, LengthMm: 28})
	assert.NoError(t, err)

	err = repository.DeleteByID(ctx, "DUP-1", stamp)
	assert.NoError(t, err)

	records, err := repository.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, StatusWarning, records[0].Status)
}
