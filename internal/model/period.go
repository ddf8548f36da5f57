package model

import "time"

// PeriodKey selects the reporting window for a computation.
type PeriodKey string

const (
	PeriodDay      PeriodKey = "day"
	PeriodWeek     PeriodKey = "week"
	PeriodMonth    PeriodKey = "month"
	PeriodQuarter  PeriodKey = "quarter"
	PeriodHalfYear PeriodKey = "half_year"
	PeriodYear     PeriodKey = "year"
)

// PeriodBounds is a concrete reporting window. End is never later than the
// reference instant the bounds were resolved against. Elapsed is the fraction
// of the period already consumed, in [0,1].
type PeriodBounds struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Elapsed float64   `json:"elapsed"`
}
