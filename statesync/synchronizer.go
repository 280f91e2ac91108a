// Package statesync keeps the three representations of directory state in
// lockstep on the client: the address-bar query string, the in-memory
// FilterSpec store, and the subscribed server fetchers. The store is the
// single source of truth; the address bar only overwrites it on external
// navigation (back/forward).
package statesync

import (
	"context"
	"sync"
	"time"

	"github.com/3lokai/icb-directory-backend/models"
)

// DefaultDebounce is how long typing must pause before a search draft is
// committed to the name-match oracle.
const DefaultDebounce = 300 * time.Millisecond

// AddressBar is the history surface the synchronizer writes to. Replace
// semantics: the current entry is overwritten, no new back-stack entry.
type AddressBar interface {
	ReplaceQuery(raw string)
}

// MatchOracle is the local fuzzy name-match component. It returns ranked
// candidate coffee IDs for a text query.
type MatchOracle interface {
	Match(ctx context.Context, query string) ([]int64, error)
}

// Synchronizer is an explicit state machine: uninitialized until Seed, then
// synchronized. The lastWritten field is the loop breaker — a URL write
// happens only when the serialized spec differs from the last value this
// synchronizer itself wrote, and an incoming URL change equal to lastWritten
// is a self-echo and ignored.
type Synchronizer struct {
	mu sync.Mutex

	bar      AddressBar
	oracle   MatchOracle
	debounce time.Duration
	after    func(time.Duration, func()) (cancel func())

	spec        models.FilterSpec
	seeded      bool
	lastWritten string
	listeners   []func(models.FilterSpec)

	draft       string
	draftSeq    uint64
	cancelTimer func()

	dragging bool
	dragMin  *int
	dragMax  *int
}

type Option func(*Synchronizer)

// WithDebounce overrides the draft-commit interval.
func WithDebounce(d time.Duration) Option {
	return func(s *Synchronizer) { s.debounce = d }
}

// WithTimerFunc replaces the debounce timer source. Tests use this to fire
// timers deterministically.
func WithTimerFunc(after func(time.Duration, func()) (cancel func())) Option {
	return func(s *Synchronizer) { s.after = after }
}

func New(bar AddressBar, oracle MatchOracle, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		bar:      bar,
		oracle:   oracle,
		debounce: DefaultDebounce,
		after: func(d time.Duration, fn func()) func() {
			t := time.AfterFunc(d, fn)
			return func() { t.Stop() }
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed initializes the store from server-rendered data, exactly once. The
// address bar already reflects this state, so no write happens and no fetch
// is triggered.
func (s *Synchronizer) Seed(spec models.FilterSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return
	}
	s.spec = spec
	s.draft = spec.Query
	s.lastWritten = spec.Encode()
	s.seeded = true
}

// Spec returns the current store value.
func (s *Synchronizer) Spec() models.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Subscribe registers a listener invoked once per logical store change.
// Listeners typically issue the list + facet fetches.
func (s *Synchronizer) Subscribe(fn func(models.FilterSpec)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Apply commits a store mutation: one URL write (if the serialized form
// changed) and one listener notification. Rapid successive calls cannot
// produce out-of-order URL writes because writes are gated on lastWritten,
// not on timing.
func (s *Synchronizer) Apply(mutate func(*models.FilterSpec)) {
	s.mu.Lock()
	prev := s.spec.Encode()
	next := s.spec
	mutate(&next)
	s.spec = next

	encoded := next.Encode()
	if encoded == prev && encoded == s.lastWritten {
		// no-op mutation; nothing to write, nothing to fetch
		s.mu.Unlock()
		return
	}
	if encoded != s.lastWritten {
		s.lastWritten = encoded
		s.bar.ReplaceQuery(encoded)
	}
	listeners := append([]func(models.FilterSpec){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// OnExternalChange handles back/forward navigation: an address-bar value the
// synchronizer did not write itself overwrites the store. Malformed query
// strings parse to the empty spec rather than failing navigation.
func (s *Synchronizer) OnExternalChange(raw string) {
	s.mu.Lock()
	if raw == s.lastWritten {
		// self-echo of our own write
		s.mu.Unlock()
		return
	}
	spec := models.ParseQueryString(raw)
	s.spec = spec
	s.draft = spec.Query
	s.lastWritten = raw
	listeners := append([]func(models.FilterSpec){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(spec)
	}
}
