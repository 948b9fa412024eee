package sample

import (
	"context"
	"errors"
	"math"
	"time"
)

var (
	ErrKVStoreNotAvailable = errors.New("KV store not available")
	ErrNonFiniteDimension  = errors.New("dimensions must be finite numbers")
	ErrInvalidStatus       = errors.New("invalid status value")
)

// SaveInput carries the caller-supplied fields of a new record. SampleID and
// StatusOverride are optional: a blank SampleID is assigned by the
// identifier generator and an empty StatusOverride means the status is
// computed from the dimensions. An override is applied only when it names a
// valid status; anything else rejects the save.
type SaveInput struct {
	SampleID       string  `json:"sampleId,omitempty"`
	HeightMm       float64 `json:"heightMm"`
	WidthMm        float64 `json:"widthMm"`
	LengthMm       float64 `json:"lengthMm"`
	StatusOverride Status  `json:"statusOverride,omitempty"`
}

// Repository owns the persisted record sequence. Records are never mutated
// in place: Save appends and DeleteByID removes, nothing else.
type Repository interface {
	// ListAll returns the records in insertion order. Absent or corrupt
	// persisted state reads back as an empty list, not as an error.
	ListAll(ctx context.Context) ([]Record, error)
	// Save classifies, stamps and appends a new record and returns it.
	Save(ctx context.Context, input SaveInput) (*Record, error)
	// DeleteByID removes the first record matching both fields exactly.
	// Deleting a record that does not exist is a no-op.
	DeleteByID(ctx context.Context, sampleID string, createdAt time.Time) error

	IsReady() bool
	Close() error
}

// ValidateDimensions rejects NaN and ±Inf before they reach Classify, which
// assumes finite inputs.
func ValidateDimensions(heightMm, widthMm, lengthMm float64) error {
	for _, value := range []float64{heightMm, widthMm, lengthMm} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ErrNonFiniteDimension
		}
	}

	return nil
}

// BuildRecord is the shared construction step behind Repository.Save:
// identifier assignment, classification and the creation timestamp all
// happen here so every backend persists identical records.
func BuildRecord(input SaveInput, existing []Record, now time.Time) (*Record, error) {
	if err := ValidateDimensions(input.HeightMm, input.WidthMm, input.LengthMm); err != nil {
		return nil, err
	}

	status := Classify(input.HeightMm, input.WidthMm, input.LengthMm)
	if input.StatusOverride != "" {
		if !input.StatusOverride.IsValid() {
			return nil, ErrInvalidStatus
		}
		status = input.StatusOverride
	}

	return &Record{
		SampleID:  GenerateSampleID(input.SampleID, existing),
		HeightMm:  input.HeightMm,
		WidthMm:   input.WidthMm,
		LengthMm:  input.LengthMm,
		Status:    status,
		CreatedAt: now,
	}, nil
}
