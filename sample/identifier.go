package sample

import "strings"

const (
	// BasePrefix starts every auto-generated sample ID.
	BasePrefix = "4827-"

	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateSampleID returns the trimmed user-supplied ID when one is present;
// the user override always wins. Otherwise it derives the next auto ID from
// the current store contents.
//
// Auto IDs cycle through A-Z, so the 27th unprefixed record collides with
// the first. Known behavior, kept for compatibility with existing logs.
func GenerateSampleID(existing string, records []Record) string {
	trimmed := strings.TrimSpace(existing)
	if trimmed != "" {
		return trimmed
	}

	prefixedCount := 0
	for i := range records {
		if strings.HasPrefix(records[i].SampleID, BasePrefix) {
			prefixedCount++
		}
	}

	return NextAutoID(prefixedCount)
}

// NextAutoID maps the number of already prefixed records onto the next
// letter. Backends that count with a query instead of loading the whole
// list call this directly.
func NextAutoID(prefixedCount int) string {
	letter := idLetters[prefixedCount%len(idLetters)]
	return BasePrefix + string(letter)
}
