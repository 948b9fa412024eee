package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/clinmind/samplelog/sample"
)

// Report is a point-in-time summary of the measurement history over a
// period: how many samples landed in each status band and which record is
// the most recent. One report exists per (period, end day) pair; rebuilding
// the same window upserts.
type Report struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Period string `json:"period"` // ISO 8601 duration the window was built from

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Total        int            `json:"total"`
	StatusCounts StatusCounts   `json:"status_counts"`
	Latest       *sample.Record `json:"latest,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

type StatusCounts struct {
	OK         int `json:"ok"`
	Warning    int `json:"warning"`
	OutOfRange int `json:"out_of_range"`
}

func NewEmptyReport(period string) *Report {
	return &Report{
		Period: period,
	}
}

func (r *Report) IsSaved() bool {
	return r.ID != ""
}

// Merge keeps the other report's fields wherever this one is still zero.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}

	if r.Name == "" {
		r.Name = other.Name
	}
	if r.Period == "" {
		r.Period = other.Period
	}
	if r.Start.IsZero() {
		r.Start = other.Start
	}
	if r.End.IsZero() {
		r.End = other.End
	}
	if r.Total == 0 && r.Latest == nil {
		r.Total = other.Total
		r.StatusCounts = other.StatusCounts
		r.Latest = other.Latest
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = other.GeneratedAt
	}
}

// Summarize fills the counts and the latest record from the given window.
// Records are expected in insertion order, so the last one is the latest.
func (r *Report) Summarize(records []sample.Record) {
	r.Total = len(records)

	counts := StatusCounts{}
	for i := range records {
		switch records[i].Status {
		case sample.StatusOK:
			counts.OK++
		case sample.StatusWarning:
			counts.Warning++
		case sample.StatusOutOfRange:
			counts.OutOfRange++
		}
	}
	r.StatusCounts = counts

	if len(records) > 0 {
		latest := records[len(records)-1]
		r.Latest = &latest
	}
}

func GenerateReportID(report *Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	if report.Period == "" {
		return "", fmt.Errorf("report period cannot be empty")
	}

	if report.End.IsZero() {
		return "", fmt.Errorf("report window end cannot be empty")
	}

	id := strings.Join([]string{"history", report.Period, report.End.Format("2006-01-02")}, "-")
	return slug.Make(id), nil
}
