package geoassist

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusErrorRateLimit(t *testing.T) {
	err := fmt.Errorf("search: %w", &StatusError{Code: 429, Body: "slow down"})
	if !errors.Is(err, ErrRateLimited) || !IsRateLimited(err) {
		t.Fatalf("expected 429 to be rate limited: %v", err)
	}
	if errors.Is(&StatusError{Code: 500}, ErrRateLimited) {
		t.Fatalf("expected 500 not to be rate limited")
	}
	if got := (&StatusError{Code: 500}).Error(); got != "geoassist: lookup failed with status 500" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestIsRateLimitedMessageMatch(t *testing.T) {
	cases := map[error]bool{
		nil:                                       false,
		errors.New("Rate limit exceeded"):          true,
		errors.New("upstream returned 429"):        true,
		errors.New("connection reset"):             false,
		fmt.Errorf("wrapped: %w", ErrRateLimited): true,
	}
	for err, want := range cases {
		if got := IsRateLimited(err); got != want {
			t.Fatalf("IsRateLimited(%v) = %v, want %v", err, got, want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeRateLimited.String() != "rate_limited" || OutcomeSatisfied.String() != "satisfied" {
		t.Fatalf("unexpected outcome names")
	}
	if Outcome(42).String() != "outcome(42)" {
		t.Fatalf("unexpected unknown outcome name %q", Outcome(42).String())
	}
	if !(Result{Outcome: OutcomeCancelled}).Empty() {
		t.Fatalf("expected cancelled result to be empty")
	}
}
