package period

import (
	"errors"
	"math"
	"testing"
	"time"

	"SalesRadar/internal/model"
)

func TestResolve_Day(t *testing.T) {
	ref := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	b, err := Resolve(model.PeriodDay, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Start.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", b.Start)
	}
	if !b.End.Equal(ref) {
		t.Errorf("end should clamp to reference instant, got %v", b.End)
	}
	if b.Elapsed != 1 {
		t.Errorf("day elapsed should always be 1, got %v", b.Elapsed)
	}
}

func TestResolve_WeekWednesday(t *testing.T) {
	// Wednesday 2025-03-12, 12:00 → 2 whole days since Monday plus half a day.
	ref := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	b, err := Resolve(model.PeriodWeek, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week should anchor on Monday, got %v", b.Start)
	}
	want := (2 + 0.5) / 7
	if math.Abs(b.Elapsed-want) > 1e-9 {
		t.Errorf("elapsed: got %v, want %v", b.Elapsed, want)
	}
}

func TestResolve_WeekSunday(t *testing.T) {
	ref := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC) // Sunday
	b, err := Resolve(model.PeriodWeek, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", b.Start)
	}
	if b.Elapsed <= 6.0/7 || b.Elapsed > 1 {
		t.Errorf("late Sunday elapsed out of range: %v", b.Elapsed)
	}
}

func TestResolve_Month(t *testing.T) {
	ref := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	b, err := Resolve(model.PeriodMonth, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", b.Start)
	}
	want := (13 + 0.5) / 28 // 2025 is not a leap year
	if math.Abs(b.Elapsed-want) > 1e-9 {
		t.Errorf("elapsed: got %v, want %v", b.Elapsed, want)
	}
}

func TestResolve_MonthClosedPeriodKeepsFullEnd(t *testing.T) {
	// Reference instant inside March; asking for March means the period is
	// still open and the end clamps to ref.
	ref := time.Date(2025, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	b, err := Resolve(model.PeriodMonth, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.End.Equal(ref) {
		t.Errorf("end: got %v, want %v", b.End, ref)
	}
	if b.Elapsed < 0.999 {
		t.Errorf("end of month should be almost fully elapsed, got %v", b.Elapsed)
	}
}

func TestResolve_Quarter(t *testing.T) {
	ref := time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC) // Q2: Apr-Jun
	b, err := Resolve(model.PeriodQuarter, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Start.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", b.Start)
	}
	total := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC).Sub(b.Start)
	want := float64(ref.Sub(b.Start)) / float64(total)
	if math.Abs(b.Elapsed-want) > 1e-9 {
		t.Errorf("elapsed: got %v, want %v", b.Elapsed, want)
	}
}

func TestResolve_HalfYear(t *testing.T) {
	ref := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // Jul-Dec block
	b, err := Resolve(model.PeriodHalfYear, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Start.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", b.Start)
	}
}

func TestResolve_YearLeap(t *testing.T) {
	// 2024 is a leap year: July 1 is day 182 of 366.
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	b, err := Resolve(model.PeriodYear, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 182.0 / 366.0
	if math.Abs(b.Elapsed-want) > 1e-9 {
		t.Errorf("elapsed: got %v, want %v", b.Elapsed, want)
	}
}

func TestResolve_UnknownKeyFailsFast(t *testing.T) {
	_, err := Resolve(model.PeriodKey("fortnight"), time.Now())
	if err == nil {
		t.Fatal("expected error for unknown period key")
	}
	if !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestResolve_EndNeverAfterReference(t *testing.T) {
	ref := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	for _, key := range []model.PeriodKey{
		model.PeriodDay, model.PeriodWeek, model.PeriodMonth,
		model.PeriodQuarter, model.PeriodHalfYear, model.PeriodYear,
	} {
		b, err := Resolve(key, ref)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", key, err)
		}
		if b.End.After(ref) {
			t.Errorf("%s: end %v is after reference %v", key, b.End, ref)
		}
		if b.Elapsed < 0 || b.Elapsed > 1 {
			t.Errorf("%s: elapsed %v out of [0,1]", key, b.Elapsed)
		}
	}
}
