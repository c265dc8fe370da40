package model

import (
	"testing"
	"time"
)

func window(status AwardStatus, start, end time.Time) *Award {
	return &Award{Status: status, ApplicationStartDate: start, ApplicationEndDate: end}
}

func TestIsOpenForApplications(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		award  *Award
		now    time.Time
		expect bool
	}{
		{"inside window", window(AwardActive, start, end), start.AddDate(0, 0, 10), true},
		{"at start boundary", window(AwardActive, start, end), start, true},
		{"at end boundary", window(AwardActive, start, end), end, true},
		{"before window", window(AwardActive, start, end), start.AddDate(0, 0, -1), false},
		{"after window", window(AwardActive, start, end), end.AddDate(0, 0, 1), false},
		{"draft inside window", window(AwardDraft, start, end), start.AddDate(0, 0, 10), false},
		{"closed inside window", window(AwardClosed, start, end), start.AddDate(0, 0, 10), false},
		{"suspended inside window", window(AwardSuspended, start, end), start.AddDate(0, 0, 10), false},
	}

	for _, tc := range cases {
		if got := tc.award.IsOpenForApplications(tc.now); got != tc.expect {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.expect)
		}
	}
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	announce := end.AddDate(0, 0, 14)

	a := window(AwardDraft, start, end)
	if err := a.ValidateWindow(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}

	a.AnnouncementDate = &announce
	if err := a.ValidateWindow(); err != nil {
		t.Fatalf("valid announcement rejected: %v", err)
	}

	bad := window(AwardDraft, end, start)
	if err := bad.ValidateWindow(); err == nil {
		t.Fatal("expected error for end before start")
	}

	same := window(AwardDraft, start, start)
	if err := same.ValidateWindow(); err == nil {
		t.Fatal("expected error for empty window")
	}

	early := start.AddDate(0, 0, 5)
	a.AnnouncementDate = &early
	if err := a.ValidateWindow(); err == nil {
		t.Fatal("expected error for announcement inside window")
	}
}
