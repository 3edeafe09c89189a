package dates

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse(" 2025-02-01 ")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if d != "2025-02-01" {
		t.Fatalf("expected normalized date, got %q", d)
	}

	for _, bad := range []string{"", "2025-13-01", "2025-02-30", "01/02/2025", "2025-2-1"} {
		if _, err := Parse(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}

func TestDate_Ordering(t *testing.T) {
	a := MustParse("2025-01-31")
	b := MustParse("2025-02-01")

	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected %s < %s", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %s > %s", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Fatalf("a date must not compare against itself")
	}
}

func TestDate_AddDays(t *testing.T) {
	d := MustParse("2025-03-01")
	if got := d.AddDays(-1); got != "2025-02-28" {
		t.Fatalf("expected month rollover, got %s", got)
	}
	if got := d.AddDays(31); got != "2025-04-01" {
		t.Fatalf("expected 2025-04-01, got %s", got)
	}
}

func TestToday(t *testing.T) {
	now := func() time.Time {
		return time.Date(2025, 5, 20, 23, 59, 0, 0, time.UTC)
	}
	if got := Today(now); got != "2025-05-20" {
		t.Fatalf("expected 2025-05-20, got %s", got)
	}
}
