package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classifier derives the status and date key of a check-in.
type Classifier struct {
	cutoffHour int
	loc        *time.Location
}

func NewClassifier(cutoffHour int, loc *time.Location) Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return Classifier{cutoffHour: cutoffHour, loc: loc}
}

// Classify returns Present when the local hour is strictly before the cutoff, Late otherwise.
func (c Classifier) Classify(t time.Time) Status {
	if t.In(c.loc).Hour() < c.cutoffHour {
		return StatusPresent
	}
	return StatusLate
}

// DateKey returns the YYYY-MM-DD key of t in the attendance time zone.
func (c Classifier) DateKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

func (c Classifier) Location() *time.Location {
	return c.loc
}

// WorkedHours returns out-in in hours rounded half away from zero to 2 decimals.
func WorkedHours(in, out time.Time) float64 {
	d := out.Sub(in)
	if d < 0 {
		return 0
	}
	hours := decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(int64(time.Hour))).Round(2)
	return hours.InexactFloat64()
}
