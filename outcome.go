package geoassist

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrRateLimited marks a lookup rejected by the provider's rate limiter.
	ErrRateLimited = errors.New("geoassist: rate limited")
	// ErrLookupRequired is returned by New when no lookup client is configured.
	ErrLookupRequired = errors.New("geoassist: lookup client is required")
	// ErrInvalidCoordinates is returned for points outside latitude/longitude bounds.
	ErrInvalidCoordinates = errors.New("geoassist: invalid coordinates")
	// ErrLookupTimeout is returned when a lookup exceeds the configured timeout.
	ErrLookupTimeout = errors.New("geoassist: lookup timed out")
)

// Outcome tags how a lookup call was resolved.
type Outcome int

const (
	// OutcomeSkipped means the query was too short to look up.
	OutcomeSkipped Outcome = iota
	// OutcomeCached means the places came from a valid cache entry.
	OutcomeCached
	// OutcomeSatisfied means the query equals the remembered selection; nothing was fetched.
	OutcomeSatisfied
	// OutcomeFetched means the places came from a fresh lookup.
	OutcomeFetched
	// OutcomeCancelled means newer input or the caller abandoned the call.
	OutcomeCancelled
	// OutcomeRateLimited means the provider refused the lookup.
	OutcomeRateLimited
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCached:
		return "cached"
	case OutcomeSatisfied:
		return "satisfied"
	case OutcomeFetched:
		return "fetched"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the answer to an autocomplete call.
// Places is empty for every outcome except OutcomeCached and OutcomeFetched.
type Result struct {
	Places  []Place
	Outcome Outcome
}

// Empty reports whether the result carries no places.
func (r Result) Empty() bool { return len(r.Places) == 0 }

// StatusError is a non-2xx answer from the lookup provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("geoassist: lookup failed with status %d", e.Code)
	}
	return fmt.Sprintf("geoassist: lookup failed with status %d: %s", e.Code, e.Body)
}

// Unwrap lets errors.Is(err, ErrRateLimited) match a 429 answer.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	return nil
}

// IsRateLimited reports whether err came from the provider's rate limiter.
// Clients that only surface a message are matched on "rate limit" or "429".
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "429")
}
