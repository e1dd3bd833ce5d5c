package helpers

import (
	"testing"
	"time"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name             string
		page, size       int
		wantOff, wantLim uint64
	}{
		{name: "first page", page: 1, size: 10, wantOff: 0, wantLim: 10},
		{name: "third page", page: 3, size: 20, wantOff: 40, wantLim: 20},
		{name: "zero page falls back", page: 0, size: 5, wantOff: 0, wantLim: 5},
		{name: "oversized page size", page: 2, size: 500, wantOff: 10, wantLim: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, lim := CalculateOffsetLimit(tt.page, tt.size)
			if off != tt.wantOff || lim != tt.wantLim {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.size, off, lim, tt.wantOff, tt.wantLim)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 5, 10)
	if info.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", info.TotalPages)
	}
	if info.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want clamped 3", info.CurrentPage)
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 || empty.CurrentPage != 1 {
		t.Errorf("empty pagination = %+v, want one page", empty)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90s", time.Second); got != 90*time.Second {
		t.Errorf("ParseDuration(90s) = %v", got)
	}
	if got := ParseDuration("later", 7*time.Second); got != 7*time.Second {
		t.Errorf("ParseDuration(later) = %v, want default", got)
	}
}

func TestDeadlinePassed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Minute)
	after := now.Add(time.Minute)

	if DeadlinePassed(nil, now) {
		t.Error("nil deadline should never pass")
	}
	if !DeadlinePassed(&before, now) {
		t.Error("deadline in the past should pass")
	}
	if DeadlinePassed(&after, now) {
		t.Error("deadline in the future should not pass")
	}
}
