package geoassistfake

import (
	"context"
	"sync"
	"testing"

	"github.com/goforj/geoassist"
)

// Call records one Search or Reverse invocation.
type Call struct {
	Text    string
	Options geoassist.Options
	At      geoassist.Coordinates
}

// Lookup is a scripted geoassist.Lookup. Responses are keyed by the text the
// client receives (normalized query). Unknown texts return no places.
type Lookup struct {
	// IgnoreContext makes gated calls finish even after their context ends,
	// like a client whose request could not be aborted.
	IgnoreContext bool

	mu       sync.Mutex
	places   map[string][]geoassist.Place
	errs     map[string]error
	gates    map[string]*Gate
	reverse  map[geoassist.Coordinates]geoassist.Place
	searches []Call
	reverses []Call
}

// Gate holds Search calls for one text until released.
type Gate struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	begin   sync.Once
}

// Started is closed when the first gated call begins.
func (g *Gate) Started() <-chan struct{} { return g.started }

// Release lets gated calls finish.
func (g *Gate) Release() { g.once.Do(func() { close(g.release) }) }

// NewLookup returns an empty Lookup.
func NewLookup() *Lookup {
	return &Lookup{
		places:  make(map[string][]geoassist.Place),
		errs:    make(map[string]error),
		gates:   make(map[string]*Gate),
		reverse: make(map[geoassist.Coordinates]geoassist.Place),
	}
}

var _ geoassist.Lookup = (*Lookup)(nil)

// Respond scripts the places returned for text.
func (l *Lookup) Respond(text string, places ...geoassist.Place) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.places[text] = places
	delete(l.errs, text)
}

// Fail scripts an error for text.
func (l *Lookup) Fail(text string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs[text] = err
}

// Hold gates Search calls for text until the returned Gate is released.
func (l *Lookup) Hold(text string) *Gate {
	l.mu.Lock()
	defer l.mu.Unlock()
	g := &Gate{started: make(chan struct{}), release: make(chan struct{})}
	l.gates[text] = g
	return g
}

// RespondReverse scripts the place returned for a reverse lookup at at.
func (l *Lookup) RespondReverse(at geoassist.Coordinates, place geoassist.Place) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reverse[at] = place
}

// Search implements geoassist.Lookup.
func (l *Lookup) Search(ctx context.Context, text string, opts geoassist.Options) ([]geoassist.Place, error) {
	l.mu.Lock()
	l.searches = append(l.searches, Call{Text: text, Options: opts})
	gate := l.gates[text]
	l.mu.Unlock()

	if gate != nil {
		gate.begin.Do(func() { close(gate.started) })
		if l.IgnoreContext {
			<-gate.release
		} else {
			select {
			case <-gate.release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.errs[text]; err != nil {
		return nil, err
	}
	return l.places[text], nil
}

// Reverse implements geoassist.Lookup.
func (l *Lookup) Reverse(ctx context.Context, at geoassist.Coordinates) (geoassist.Place, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reverses = append(l.reverses, Call{At: at})
	if err := ctx.Err(); err != nil {
		return geoassist.Place{}, false, err
	}
	place, ok := l.reverse[at]
	return place, ok, nil
}

// Searches returns the recorded Search calls in order.
func (l *Lookup) Searches() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.searches...)
}

// Reverses returns the recorded Reverse calls in order.
func (l *Lookup) Reverses() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.reverses...)
}

// AssertSearched verifies text was searched the expected number of times.
func (l *Lookup) AssertSearched(t *testing.T, text string, times int) {
	t.Helper()
	got := 0
	for _, c := range l.Searches() {
		if c.Text == text {
			got++
		}
	}
	if got != times {
		t.Fatalf("expected search %q called %d times, got %d", text, times, got)
	}
}

// AssertTotal ensures the total number of Search calls matches times.
func (l *Lookup) AssertTotal(t *testing.T, times int) {
	t.Helper()
	if got := len(l.Searches()); got != times {
		t.Fatalf("expected search total=%d, got %d", times, got)
	}
}
