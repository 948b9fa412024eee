package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newFilterTestRecords() []Record {
	return []Record{
		{
			SampleID:  "4827-A",
			HeightMm:  10, WidthMm: 25, LengthMm: 30,
			Status:    StatusOK,
			CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local),
		},
		{
			SampleID:  "LAB-99",
			HeightMm:  7.5, WidthMm: 22, LengthMm: 28,
			Status:    StatusWarning,
			CreatedAt: time.Date(2026, 3, 16, 9, 0, 0, 0, time.Local),
		},
		{
			SampleID:  "4827-B",
			HeightMm:  15, WidthMm: 25, LengthMm: 30,
			Status:    StatusOutOfRange,
			CreatedAt: time.Date(2026, 3, 16, 23, 59, 0, 0, time.Local),
		},
	}
}

func TestFilterMatches_Search(t *testing.T) {
	records := newFilterTestRecords()

	testCases := []struct {
		name        string
		search      string
		expectedIDs []string
	}{
		{
			name:        "blank search matches all",
			search:      "",
			expectedIDs: []string{"4827-A", "LAB-99", "4827-B"},
		},
		{
			name:        "whitespace search matches all",
			search:      "   ",
			expectedIDs: []string{"4827-A", "LAB-99", "4827-B"},
		},
		{
			name:        "id substring",
			search:      "4827",
			expectedIDs: []string{"4827-A", "4827-B"},
		},
		{
			name:        "id is case insensitive",
			search:      "lab-99",
			expectedIDs: []string{"LAB-99"},
		},
		{
			name:        "rendered date substring",
			search:      "15/03/2026",
			expectedIDs: []string{"4827-A"},
		},
		{
			name:        "rendered time substring",
			search:      "10:30",
			expectedIDs: []string{"4827-A"},
		},
		{
			name:        "no match",
			search:      "missing",
			expectedIDs: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := FilterRecords(records, Filter{Search: tc.search})

			ids := make([]string, 0, len(filtered))
			for _, record := range filtered {
				ids = append(ids, record.SampleID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestFilterMatches_Date(t *testing.T) {
	records := newFilterTestRecords()

	// Any moment of the day selects the whole local calendar day.
	day := time.Date(2026, 3, 16, 14, 0, 0, 0, time.Local)
	filtered := FilterRecords(records, Filter{Date: &day})

	assert.Len(t, filtered, 2)
	assert.Equal(t, "LAB-99", filtered[0].SampleID)
	assert.Equal(t, "4827-B", filtered[1].SampleID)
}

func TestFilterMatches_Period(t *testing.T) {
	records := newFilterTestRecords()

	period := &Period{
		Start: time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local),
		End:   time.Date(2026, 3, 16, 12, 0, 0, 0, time.Local),
	}
	filtered := FilterRecords(records, Filter{Period: period})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "LAB-99", filtered[0].SampleID)
}

func TestFilterMatches_ComposesWithAND(t *testing.T) {
	records := newFilterTestRecords()
	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)

	filtered := FilterRecords(records, Filter{Search: "4827", Date: &day})

	assert.Len(t, filtered, 1)
	assert.Equal(t, "4827-B", filtered[0].SampleID)
}

func TestFilterRecords_PreservesOrder(t *testing.T) {
	records := newFilterTestRecords()

	filtered := FilterRecords(records, Filter{})

	assert.Equal(t, records, filtered)
}
