package sample

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSampleID_UserOverrideWins(t *testing.T) {
	assert.Equal(t, "LAB-99", GenerateSampleID("LAB-99", nil))
	assert.Equal(t, "LAB-99", GenerateSampleID("  LAB-99  ", nil))
}

func TestGenerateSampleID_EmptyStore(t *testing.T) {
	assert.Equal(t, "4827-A", GenerateSampleID("", nil))
	assert.Equal(t, "4827-A", GenerateSampleID("   ", []Record{}))
}

func TestGenerateSampleID_CountsOnlyPrefixedRecords(t *testing.T) {
	records := []Record{
		{SampleID: "4827-A"},
		{SampleID: "LAB-99"},
		{SampleID: "4827-B"},
	}

	assert.Equal(t, "4827-C", GenerateSampleID("", records))
}

func TestGenerateSampleID_WrapsAroundAfterZ(t *testing.T) {
	records := make([]Record, 0, 26)
	for i := 0; i < 26; i++ {
		records = append(records, Record{SampleID: NextAutoID(i)})
	}

	assert.Equal(t, "4827-Z", records[25].SampleID)

	// The 27th auto-generated ID collides with the first. Documented
	// behavior, must be reproduced.
	assert.Equal(t, "4827-A", GenerateSampleID("", records))
}

func TestNextAutoID(t *testing.T) {
	testCases := []struct {
		count    int
		expected string
	}{
		{0, "4827-A"},
		{1, "4827-B"},
		{25, "4827-Z"},
		{26, "4827-A"},
		{52, "4827-A"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("count %d", tc.count), func(t *testing.T) {
			assert.Equal(t, tc.expected, NextAutoID(tc.count))
		})
	}
}
