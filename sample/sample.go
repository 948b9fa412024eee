package sample

import (
	"time"
)

// DateTimeLayout renders timestamps the way the history screen shows them,
// day-first with minute precision.
const DateTimeLayout = "02/01/2006 15:04"

// Record is one measured and classified sample. Records are immutable after
// creation; identity for deletion is the (SampleID, CreatedAt) pair. The
// JSON layout matches the browser build's persisted payload.
type Record struct {
	SampleID  string    `json:"sampleId"`
	HeightMm  float64   `json:"heightMm"`
	WidthMm   float64   `json:"widthMm"`
	LengthMm  float64   `json:"lengthMm"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecordList []Record

// RenderedDateTime is the human-readable creation time, in local time. The
// history search matches against this string.
func (r Record) RenderedDateTime() string {
	return r.CreatedAt.Local().Format(DateTimeLayout)
}

// MatchesIdentity reports whether the record is the one addressed by the
// given (sampleID, createdAt) pair.
func (r Record) MatchesIdentity(sampleID string, createdAt time.Time) bool {
	return r.SampleID == sampleID && r.CreatedAt.Equal(createdAt)
}

// IsSameLocalDay reports whether two instants fall on the same calendar day
// in the local timezone.
func IsSameLocalDay(t1, t2 time.Time) bool {
	loc := time.Local
	t1Local := t1.In(loc)
	t2Local := t2.In(loc)

	start1 := time.Date(t1Local.Year(), t1Local.Month(), t1Local.Day(), 0, 0, 0, 0, loc)
	start2 := time.Date(t2Local.Year(), t2Local.Month(), t2Local.Day(), 0, 0, 0, 0, loc)

	return start1.Equal(start2)
}
