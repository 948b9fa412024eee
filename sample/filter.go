package sample

import (
	"strings"
	"time"
)

// Filter narrows a history listing. A zero Filter matches every record;
// present fields compose with logical AND.
type Filter struct {
	// Search is a case-insensitive substring matched against the sample ID
	// or the rendered date/time string. Blank matches everything.
	Search string
	// Date restricts to records created on the same local calendar day.
	Date *time.Time
	// Period restricts to records created inside the window.
	Period *Period
}

func (f Filter) Matches(record Record) bool {
	if search := strings.TrimSpace(f.Search); search != "" {
		needle := strings.ToLower(search)
		id := strings.ToLower(record.SampleID)
		rendered := strings.ToLower(record.RenderedDateTime())
		if !strings.Contains(id, needle) && !strings.Contains(rendered, needle) {
			return false
		}
	}

	if f.Date != nil && !IsSameLocalDay(record.CreatedAt, *f.Date) {
		return false
	}

	if f.Period != nil && !f.Period.Contains(record.CreatedAt) {
		return false
	}

	return true
}

// FilterRecords keeps the insertion order of the input.
func FilterRecords(records []Record, filter Filter) []Record {
	filtered := make([]Record, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}
