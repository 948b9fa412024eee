package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinmind/samplelog/sample"
)

func TestSummarize(t *testing.T) {
	records := []sample.Record{
		{SampleID: "4827-A", Status: sample.StatusOK},
		{SampleID: "4827-B", Status: sample.StatusWarning},
		{SampleID: "4827-C", Status: sample.StatusOK},
		{SampleID: "4827-D", Status: sample.StatusOutOfRange},
	}

	historyReport := NewEmptyReport("P7D")
	historyReport.Summarize(records)

	assert.Equal(t, 4, historyReport.Total)
	assert.Equal(t, StatusCounts{OK: 2, Warning: 1, OutOfRange: 1}, historyReport.StatusCounts)
	assert.NotNil(t, historyReport.Latest)
	assert.Equal(t, "4827-D", historyReport.Latest.SampleID)
}

func TestSummarize_EmptyWindow(t *testing.T) {
	historyReport := NewEmptyReport("P7D")
	historyReport.Summarize([]sample.Record{})

	assert.Equal(t, 0, historyReport.Total)
	assert.Equal(t, StatusCounts{}, historyReport.StatusCounts)
	assert.Nil(t, historyReport.Latest)
}

func TestGenerateReportID(t *testing.T) {
	historyReport := NewEmptyReport("P7D")
	historyReport.End = time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	id, err := GenerateReportID(historyReport)
	assert.NoError(t, err)
	assert.Equal(t, "history-p7d-2026-03-15", id)
}

func TestGenerateReportID_Errors(t *testing.T) {
	_, err := GenerateReportID(nil)
	assert.Error(t, err)

	_, err = GenerateReportID(&Report{End: time.Now()})
	assert.Error(t, err)

	_, err = GenerateReportID(&Report{Period: "P7D"})
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	existing := &Report{
		ID:          "history-p7d-2026-03-15",
		Name:        "Measurement history P7D",
		Period:      "P7D",
		Total:       3,
		GeneratedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
	}

	updated := &Report{ID: "history-p7d-2026-03-15", Total: 5}
	updated.Merge(existing)

	assert.Equal(t, "Measurement history P7D", updated.Name)
	assert.Equal(t, "P7D", updated.Period)
	assert.Equal(t, 5, updated.Total, "non-zero counts are not overwritten")
	assert.Equal(t, existing.GeneratedAt, updated.GeneratedAt)

	updated.Merge(nil)
	assert.Equal(t, 5, updated.Total)
}

func TestIsSaved(t *testing.T) {
	assert.False(t, NewEmptyReport("P7D").IsSaved())
	assert.True(t, (&Report{ID: "history-p7d-2026-03-15"}).IsSaved())
}
