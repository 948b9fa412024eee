package sample

import (
	"fmt"
	"math"
	"time"

	"github.com/sosodev/duration"
)

// Period is a closed time window used by history filters and reports.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p *Period) IsValid() bool {
	return p.Start.Before(p.End)
}

func (p *Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

func (p *Period) String() string {
	isoDuration := duration.FromTimeDuration(p.End.Sub(p.Start))
	return isoDuration.String()
}

// NewPeriodFromISO8601Duration builds a window of the given ISO 8601
// duration ending now, e.g. "P7D" for the last seven days.
func NewPeriodFromISO8601Duration(iso8601 string) (*Period, error) {
	parsed, err := duration.Parse(iso8601)
	if err != nil {
		return nil, fmt.Errorf("failed to parse period: %w", err)
	}

	end := time.Now()
	durationSeconds := math.Ceil(parsed.ToTimeDuration().Seconds())
	start := end.Add(-time.Duration(durationSeconds) * time.Second)

	return &Period{Start: start, End: end}, nil
}
