package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/clinmind/samplelog/report"
	"github.com/clinmind/samplelog/sample"
)

const DefaultPeriod = "P7D" // ISO 8601 duration for the last 7 days

type ReportBuilderOptions struct {
	Period string
}

func NewDefaultReportBuilderOptions() ReportBuilderOptions {
	return ReportBuilderOptions{
		Period: DefaultPeriod,
	}
}

// ReportBuilder summarizes the measurement history over a period and
// upserts the result into the report store.
type ReportBuilder struct {
	sampleRepo sample.Repository
	reportRepo report.Repository

	logger *slog.Logger
}

func NewReportBuilder(sampleRepo sample.Repository, reportRepo report.Repository, logger *slog.Logger) *ReportBuilder {
	return &ReportBuilder{
		sampleRepo: sampleRepo,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

func (b *ReportBuilder) Run(ctx context.Context, opts ReportBuilderOptions) (*report.Report, error) {
	defer ctx.Done()
	b.logger.Info("Building history report", "period", opts.Period)

	period, err := sample.NewPeriodFromISO8601Duration(opts.Period)
	if err != nil {
		b.logger.Error("Failed to parse report period", "error", err)
		return nil, err
	}

	records, err := b.sampleRepo.ListAll(ctx)
	if err != nil {
		b.logger.Error("Failed to list measurement records", "error", err)
		return nil, err
	}

	windowed := sample.FilterRecords(records, sample.Filter{Period: period})
	b.logger.Debug("Windowed history records", "total", len(records), "in_window", len(windowed))

	newReport := report.NewEmptyReport(opts.Period)
	newReport.Start = period.Start
	newReport.End = period.End
	newReport.Name = "Measurement history " + opts.Period
	newReport.Summarize(windowed)
	newReport.GeneratedAt = time.Now()

	reportID, err := report.GenerateReportID(newReport)
	if err != nil {
		b.logger.Error("Failed to generate report ID", "error", err)
		return nil, err
	}

	if existingReport, err := b.reportRepo.GetByID(ctx, reportID); err == nil && existingReport != nil {
		b.logger.Info("Existing report found, updating", "reportID", reportID)
		newReport.ID = reportID
		if err := b.reportRepo.Update(ctx, newReport); err != nil {
			b.logger.Error("Failed to update existing report", "error", err)
			return nil, err
		}
	} else {
		newReport.ID = reportID
		if err := b.reportRepo.Add(ctx, newReport); err != nil {
			b.logger.Error("Failed to add new report", "error", err)
			return nil, err
		}
		b.logger.Info("Added new report", "reportID", newReport.ID)
	}

	b.logger.Info("Report building process completed", "reportID", newReport.ID)
	return newReport, nil
}
