package period

import (
	"errors"
	"fmt"
	"time"

	"SalesRadar/internal/model"
)

// ErrUnknownPeriod reports a period selector the calculator does not
// recognize. Callers translating to HTTP treat it as a request error.
var ErrUnknownPeriod = errors.New("unknown period key")

// Resolve converts a period selector and a reference instant into concrete
// bounds. The end is clamped to the reference instant when the period has not
// yet closed, since every computation is a "how am I doing so far" question.
// An unrecognized key is a programmer error and fails fast.
func Resolve(key model.PeriodKey, ref time.Time) (model.PeriodBounds, error) {
	switch key {
	case model.PeriodDay:
		return resolveDay(ref), nil
	case model.PeriodWeek:
		return resolveWeek(ref), nil
	case model.PeriodMonth:
		return resolveMonth(ref), nil
	case model.PeriodQuarter:
		return resolveMonthBlock(ref, 3), nil
	case model.PeriodHalfYear:
		return resolveMonthBlock(ref, 6), nil
	case model.PeriodYear:
		return resolveYear(ref), nil
	default:
		return model.PeriodBounds{}, fmt.Errorf("%w %q", ErrUnknownPeriod, key)
	}
}

func resolveDay(ref time.Time) model.PeriodBounds {
	start := midnight(ref)
	end := start.Add(24*time.Hour - time.Millisecond)
	// A day-scoped query is always fully elapsed by definition of "today so far".
	return model.PeriodBounds{Start: start, End: clamp(end, ref), Elapsed: 1}
}

func resolveWeek(ref time.Time) model.PeriodBounds {
	start := midnight(ref).AddDate(0, 0, -daysSinceMonday(ref))
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	elapsed := (float64(daysSinceMonday(ref)) + dayFraction(ref)) / 7
	return model.PeriodBounds{Start: start, End: clamp(end, ref), Elapsed: clamp01(elapsed)}
}

func resolveMonth(ref time.Time) model.PeriodBounds {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	days := float64(daysInMonth(ref))
	elapsed := (float64(ref.Day()-1) + dayFraction(ref)) / days
	return model.PeriodBounds{Start: start, End: clamp(end, ref), Elapsed: clamp01(elapsed)}
}

// resolveMonthBlock handles quarters (span=3) and half-years (span=6): the
// calendar block of `span` months containing ref, with the elapsed fraction
// taken over the block's real duration (month lengths and leap years vary).
func resolveMonthBlock(ref time.Time, span int) model.PeriodBounds {
	block := (int(ref.Month()) - 1) / span
	start := time.Date(ref.Year(), time.Month(block*span+1), 1, 0, 0, 0, 0, ref.Location())
	next := start.AddDate(0, span, 0)
	end := next.Add(-time.Millisecond)
	elapsed := float64(ref.Sub(start)) / float64(next.Sub(start))
	return model.PeriodBounds{Start: start, End: clamp(end, ref), Elapsed: clamp01(elapsed)}
}

func resolveYear(ref time.Time) model.PeriodBounds {
	start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	next := start.AddDate(1, 0, 0)
	end := next.Add(-time.Millisecond)
	elapsedDays := ref.Sub(start).Hours() / 24
	totalDays := next.Sub(start).Hours() / 24 // 365 or 366
	return model.PeriodBounds{Start: start, End: clamp(end, ref), Elapsed: clamp01(elapsedDays / totalDays)}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysSinceMonday returns completed whole days since the Monday of t's week.
func daysSinceMonday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 { // Sunday
		return 6
	}
	return wd - 1
}

// dayFraction returns how far through its day t is, in [0,1).
func dayFraction(t time.Time) float64 {
	return float64(t.Sub(midnight(t))) / float64(24*time.Hour)
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func clamp(end, ref time.Time) time.Time {
	if end.After(ref) {
		return ref
	}
	return end
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
