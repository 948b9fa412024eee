package sample

import (
	"context"
	"log/slog"
)

type Seeder interface {
	Seed(ctx context.Context, repository Repository) error
}

// DemoSeeder fills an empty store with a handful of representative records,
// one per status band, so a fresh deployment has something to show.
type DemoSeeder struct {
	logger *slog.Logger
}

func NewDemoSeeder(logger *slog.Logger) *DemoSeeder {
	return &DemoSeeder{
		logger: logger,
	}
}

func DemoInputs() []SaveInput {
	return []SaveInput{
		{HeightMm: 10.0, WidthMm: 25.0, LengthMm: 30.0},
		{HeightMm: 7.5, WidthMm: 22.0, LengthMm: 28.0},
		{HeightMm: 15.0, WidthMm: 25.0, LengthMm: 30.0},
	}
}

func (s *DemoSeeder) Seed(ctx context.Context, repository Repository) error {
	if !repository.IsReady() {
		return ErrKVStoreNotAvailable
	}

	inputs := DemoInputs()
	s.logger.Info("Seeding demo records", "count", len(inputs))
	for _, input := range inputs {
		record, err := repository.Save(ctx, input)
		if err != nil {
			s.logger.Error("Failed to seed record", "error", err)
			return err
		}
		s.logger.Info("Record seeded successfully", "sampleId", record.SampleID, "status", record.Status)
	}

	s.logger.Info("Seeding completed successfully")
	return nil
}
