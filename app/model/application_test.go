package model

import "testing"

func TestReviewActionNextStatus(t *testing.T) {
	cases := []struct {
		action ReviewAction
		want   ApplicationStatus
	}{
		{ActionReview, ApplicationUnderReview},
		{ActionApprove, ApplicationAccepted},
		{ActionReject, ApplicationRejected},
	}
	for _, tc := range cases {
		got, ok := tc.action.NextStatus()
		if !ok || got != tc.want {
			t.Errorf("%s: got %q ok=%v, want %q", tc.action, got, ok, tc.want)
		}
	}

	if _, ok := ReviewAction("shortlist").NextStatus(); ok {
		t.Error("unknown action must not map to a status")
	}
}

// The review machine is permissive on purpose: approve after reject is
// mechanically allowed because the action does not consult the current
// status. This test pins that behavior down so a future guard is a
// deliberate change, not an accident.
func TestReviewActionIgnoresCurrentStatus(t *testing.T) {
	next, ok := ActionApprove.NextStatus()
	if !ok || next != ApplicationAccepted {
		t.Fatalf("approve from any state: got %q ok=%v", next, ok)
	}
	next, ok = ActionReject.NextStatus()
	if !ok || next != ApplicationRejected {
		t.Fatalf("reject from any state: got %q ok=%v", next, ok)
	}
}

func TestSponsorTransitions(t *testing.T) {
	valid := []struct {
		action SponsorAction
		from   VerificationStatus
		want   VerificationStatus
	}{
		{SponsorApprove, SponsorPending, SponsorVerified},
		{SponsorReject, SponsorPending, SponsorRejected},
		{SponsorSuspend, SponsorVerified, SponsorSuspended},
	}
	for _, tc := range valid {
		got, err := tc.action.Transition(tc.from)
		if err != nil || got != tc.want {
			t.Errorf("%s from %s: got %q err=%v, want %q", tc.action, tc.from, got, err, tc.want)
		}
	}

	invalid := []struct {
		action SponsorAction
		from   VerificationStatus
	}{
		{SponsorApprove, SponsorVerified},
		{SponsorApprove, SponsorRejected},
		{SponsorApprove, SponsorSuspended},
		{SponsorReject, SponsorVerified},
		{SponsorReject, SponsorSuspended},
		{SponsorSuspend, SponsorPending},
		{SponsorSuspend, SponsorRejected},
		{SponsorSuspend, SponsorSuspended},
	}
	for _, tc := range invalid {
		if _, err := tc.action.Transition(tc.from); err != ErrInvalidTransition {
			t.Errorf("%s from %s: expected ErrInvalidTransition, got %v", tc.action, tc.from, err)
		}
	}
}
