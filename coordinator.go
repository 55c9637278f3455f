package geoassist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultDebounceDelay is the quiet period before a debounced lookup runs.
	DefaultDebounceDelay = 400 * time.Millisecond
	// DefaultLookupTimeout bounds a single coordinated lookup.
	DefaultLookupTimeout = 8 * time.Second
)

// LookupFunc performs one lookup under ctx.
type LookupFunc func(ctx context.Context) ([]Place, error)

// RunFunc produces a Result under ctx for the input t; it is what a debounce
// slot runs.
type RunFunc func(ctx context.Context, t Ticket) (Result, error)

// Ticket orders accepted input. Only the most recently accepted ticket may
// start a lookup or deliver a result.
type Ticket uint64

// token is the cancellation handle of the in-flight lookup.
type token struct {
	cancel context.CancelFunc
}

type settled struct {
	res Result
	err error
}

// Coordinator owns the debounce timer and the in-flight lookup token.
// At most one lookup is current: starting another, or newer debounced input,
// supersedes it, and a superseded lookup resolves to OutcomeCancelled even if
// it completes successfully.
type Coordinator struct {
	clock   Clock
	delay   time.Duration
	timeout time.Duration

	mu      sync.Mutex
	current *token
	latest  Ticket

	timer      Timer
	generation uint64
	waiters    []chan settled
	run        RunFunc
	runCtx     context.Context
	runTicket  Ticket
}

// NewCoordinator returns a Coordinator. delay <= 0 uses DefaultDebounceDelay;
// timeout < 0 disables the lookup timeout and timeout == 0 uses DefaultLookupTimeout.
// @group Coordinator
func NewCoordinator(clock Clock, delay, timeout time.Duration) *Coordinator {
	if clock == nil {
		clock = SystemClock()
	}
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	if timeout == 0 {
		timeout = DefaultLookupTimeout
	}
	return &Coordinator{clock: clock, delay: delay, timeout: timeout}
}

// Accept records newer input and returns its ticket. It cancels nothing: an
// older lookup keeps running but can no longer deliver.
func (c *Coordinator) Accept() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	return c.latest
}

// Current reports whether t is still the most recently accepted input.
func (c *Coordinator) Current(t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return t == c.latest
}

// Coordinate accepts new input and runs fn for it. See CoordinateFor.
// @group Coordinator
func (c *Coordinator) Coordinate(ctx context.Context, fn LookupFunc) (Result, error) {
	return c.CoordinateFor(ctx, c.Accept(), fn)
}

// CoordinateFor cancels the current lookup and runs fn under a fresh token on
// behalf of t. fn's context ends when ctx ends, when a newer lookup starts or
// when the lookup timeout elapses. A ticket that is no longer current never
// starts fn, so older input cannot cancel a newer lookup.
// @group Coordinator
//
// Cancellation never surfaces as an error: a superseded call, or one whose ctx
// was cancelled, returns an empty OutcomeCancelled result whether fn succeeded
// or failed. A timeout returns ErrLookupTimeout. Other fn errors are returned
// unchanged.
func (c *Coordinator) CoordinateFor(ctx context.Context, t Ticket, fn LookupFunc) (Result, error) {
	c.mu.Lock()
	if t != c.latest {
		c.mu.Unlock()
		return Result{Outcome: OutcomeCancelled}, nil
	}
	lookupCtx, tok := c.issueLocked(ctx)
	c.mu.Unlock()

	places, err := fn(lookupCtx)
	superseded := c.release(tok, t)
	timedOut := errors.Is(lookupCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil
	tok.cancel()

	switch {
	case superseded:
		return Result{Outcome: OutcomeCancelled}, nil
	case err == nil:
		return Result{Places: places, Outcome: OutcomeFetched}, nil
	case timedOut:
		return Result{}, fmt.Errorf("%w after %s: %w", ErrLookupTimeout, c.timeout, err)
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return Result{Outcome: OutcomeCancelled}, nil
	default:
		return Result{}, err
	}
}

// Debounce accepts new input, parks the caller on the single debounce slot and
// restarts its timer. When the delay elapses without newer calls, the most
// recent run is executed once with that call's ticket and every parked caller
// receives its result. A parked caller whose ctx ends returns OutcomeCancelled,
// as do all callers of a run whose input was superseded while it ran.
// @group Coordinator
//
// Debounce also supersedes the in-flight lookup, so results for older input
// never reach a caller once newer input has arrived.
func (c *Coordinator) Debounce(ctx context.Context, run RunFunc) (Result, error) {
	ch := make(chan settled, 1)

	c.mu.Lock()
	c.supersedeLocked()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.generation++
	c.latest++
	gen := c.generation
	c.waiters = append(c.waiters, ch)
	c.run = run
	c.runCtx = ctx
	c.runTicket = c.latest
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
	c.mu.Unlock()

	select {
	case s := <-ch:
		return s.res, s.err
	case <-ctx.Done():
		return Result{Outcome: OutcomeCancelled}, nil
	}
}

// Cancel stops the debounce timer, releases its parked callers with
// OutcomeCancelled, cancels the in-flight lookup and retires every ticket
// handed out so far.
// @group Coordinator
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.latest++
	waiters := c.waiters
	c.waiters, c.run, c.runCtx = nil, nil, nil
	c.supersedeLocked()
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- settled{res: Result{Outcome: OutcomeCancelled}}
	}
}

// Waiting reports how many callers are parked on the debounce slot.
func (c *Coordinator) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.run == nil {
		c.mu.Unlock()
		return
	}
	waiters, run, ctx, t := c.waiters, c.run, c.runCtx, c.runTicket
	c.waiters, c.run, c.runCtx, c.timer = nil, nil, nil, nil
	c.mu.Unlock()

	res, err := run(ctx, t)
	if !c.Current(t) {
		res, err = Result{Outcome: OutcomeCancelled}, nil
	}
	for _, ch := range waiters {
		ch <- settled{res: res, err: err}
	}
}

func (c *Coordinator) issueLocked(ctx context.Context) (context.Context, *token) {
	lookupCtx, cancel := context.WithCancel(ctx)
	if c.timeout > 0 {
		var cancelTimeout context.CancelFunc
		lookupCtx, cancelTimeout = context.WithTimeout(lookupCtx, c.timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}
	tok := &token{cancel: cancel}
	c.supersedeLocked()
	c.current = tok
	return lookupCtx, tok
}

// release clears tok if it is still current and reports whether the lookup was
// superseded, either by a newer token or by newer input.
func (c *Coordinator) release(tok *token, t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != tok {
		return true
	}
	c.current = nil
	return t != c.latest
}

func (c *Coordinator) supersedeLocked() {
	if c.current != nil {
		c.current.cancel()
		c.current = nil
	}
}
