package statesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/3lokai/icb-directory-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBar struct {
	mu     sync.Mutex
	writes []string
}

func (b *fakeBar) ReplaceQuery(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, raw)
}

func (b *fakeBar) Writes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.writes...)
}

type fakeOracle struct {
	mu      sync.Mutex
	queries []string
	ids     []int64
	err     error

	// when set, Match blocks until released; lets tests interleave a
	// keystroke with an in-flight oracle call
	gate chan struct{}
}

func (o *fakeOracle) Match(ctx context.Context, query string) ([]int64, error) {
	o.mu.Lock()
	o.queries = append(o.queries, query)
	gate := o.gate
	o.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return o.ids, o.err
}

func (o *fakeOracle) Queries() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string{}, o.queries...)
}

// manualTimer captures debounce callbacks so tests fire them by hand.
type manualTimer struct {
	mu        sync.Mutex
	pending   func()
	gen       int
	cancelled int
}

func (m *manualTimer) after(d time.Duration, fn func()) func() {
	m.mu.Lock()
	m.pending = fn
	m.gen++
	gen := m.gen
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cancelled++
		if m.gen == gen {
			m.pending = nil
		}
	}
}

func (m *manualTimer) fire() {
	m.mu.Lock()
	fn := m.pending
	m.pending = nil
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func newTestSync(oracle MatchOracle) (*Synchronizer, *fakeBar, *manualTimer) {
	bar := &fakeBar{}
	timer := &manualTimer{}
	s := New(bar, oracle, WithTimerFunc(timer.after))
	return s, bar, timer
}

func TestSeedWritesNothing(t *testing.T) {
	s, bar, _ := newTestSync(nil)

	var notified int
	s.Subscribe(func(models.FilterSpec) { notified++ })

	seed := models.FilterSpec{RoastLevels: []string{"medium"}, Page: 2}
	s.Seed(seed)

	assert.Empty(t, bar.Writes(), "seeding must not rewrite the address bar")
	assert.Zero(t, notified, "seeding must not trigger fetches")
	assert.Equal(t, seed, s.Spec())

	// second seed is ignored
	s.Seed(models.FilterSpec{Query: "late"})
	assert.Equal(t, seed, s.Spec())
}

func TestApplyWritesOnceAndNotifiesOnce(t *testing.T) {
	s, bar, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{Page: 1})

	var got []models.FilterSpec
	s.Subscribe(func(f models.FilterSpec) { got = append(got, f) })

	s.Apply(func(f *models.FilterSpec) {
		f.Processes = []string{"washed"}
		f.Page = 1
	})

	require.Len(t, bar.Writes(), 1)
	assert.Equal(t, "processes=washed", bar.Writes()[0])
	require.Len(t, got, 1)
	assert.Equal(t, []string{"washed"}, got[0].Processes)
}

func TestApplyNoOpMutationIsSilent(t *testing.T) {
	s, bar, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{Processes: []string{"washed"}, Page: 1})

	var notified int
	s.Subscribe(func(models.FilterSpec) { notified++ })

	s.Apply(func(f *models.FilterSpec) {
		f.Processes = []string{"washed"}
	})

	assert.Empty(t, bar.Writes())
	assert.Zero(t, notified)
}

func TestExternalChangeOverwritesStore(t *testing.T) {
	s, bar, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{Page: 1})

	var got []models.FilterSpec
	s.Subscribe(func(f models.FilterSpec) { got = append(got, f) })

	s.OnExternalChange("roastLevels=dark&page=3")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"dark"}, got[0].RoastLevels)
	assert.Equal(t, 3, got[0].Page)
	// back/forward navigation never causes a reflexive URL write
	assert.Empty(t, bar.Writes())
}

func TestExternalChangeSelfEchoIgnored(t *testing.T) {
	s, bar, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{Page: 1})

	var notified int
	s.Subscribe(func(models.FilterSpec) { notified++ })

	s.Apply(func(f *models.FilterSpec) { f.InStockOnly = true })
	require.Len(t, bar.Writes(), 1)
	require.Equal(t, 1, notified)

	// the browser echoes our own write back; no loop, no second fetch
	s.OnExternalChange(bar.Writes()[0])
	assert.Equal(t, 1, notified)
	assert.Len(t, bar.Writes(), 1)
}

func TestExternalChangeMalformedFallsBackToEmptySpec(t *testing.T) {
	s, _, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{RoastLevels: []string{"light"}, Page: 1})

	s.OnExternalChange("%zz=%%%")

	got := s.Spec()
	assert.Nil(t, got.RoastLevels)
	assert.Equal(t, 1, got.Page)
}

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	oracle := &fakeOracle{ids: []int64{7, 3}}
	s, bar, timer := newTestSync(oracle)
	s.Seed(models.FilterSpec{Page: 1})

	// typing restarts the timer on every keystroke; only the settled text
	// reaches the oracle
	s.SetSearchDraft("a")
	s.SetSearchDraft("ar")
	s.SetSearchDraft("arabica")
	assert.Equal(t, "arabica", s.SearchDraft())
	assert.Empty(t, oracle.Queries())

	timer.fire()

	assert.Equal(t, []string{"arabica"}, oracle.Queries())
	got := s.Spec()
	assert.Equal(t, "arabica", got.Query)
	assert.Equal(t, []int64{7, 3}, got.IDFilter)
	assert.Equal(t, 1, got.Page)
	require.Len(t, bar.Writes(), 1)
	assert.Equal(t, 2, timer.cancelled, "each keystroke cancels the prior timer")
}

func TestCommitSearchBypassesDebounce(t *testing.T) {
	oracle := &fakeOracle{ids: []int64{9}}
	s, _, timer := newTestSync(oracle)
	s.Seed(models.FilterSpec{Page: 1})

	s.SetSearchDraft("kaapi")
	s.CommitSearch()

	assert.Equal(t, []string{"kaapi"}, oracle.Queries())
	assert.Equal(t, "kaapi", s.Spec().Query)
	assert.Equal(t, []int64{9}, s.Spec().IDFilter)

	// the cancelled timer firing later must not re-commit
	timer.fire()
	assert.Len(t, oracle.Queries(), 1)
}

func TestStaleOracleResultDiscarded(t *testing.T) {
	oracle := &fakeOracle{ids: []int64{1}, gate: make(chan struct{})}
	s, _, timer := newTestSync(oracle)
	s.Seed(models.FilterSpec{Page: 1})

	s.SetSearchDraft("mon")

	done := make(chan struct{})
	go func() {
		timer.fire() // blocks inside oracle.Match on the gate
		close(done)
	}()

	// wait for the oracle call to be in flight, then type again
	require.Eventually(t, func() bool { return len(oracle.Queries()) == 1 }, time.Second, time.Millisecond)
	s.SetSearchDraft("monsooned")
	close(oracle.gate)
	<-done

	// the stale "mon" result never reached the store
	assert.Empty(t, s.Spec().Query)
	assert.Nil(t, s.Spec().IDFilter)
}

func TestOracleFailureDegradesToTextMatch(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("index not loaded")}
	s, _, timer := newTestSync(oracle)
	s.Seed(models.FilterSpec{Page: 1})

	s.SetSearchDraft("peaberry")
	timer.fire()

	got := s.Spec()
	assert.Equal(t, "peaberry", got.Query)
	assert.Nil(t, got.IDFilter, "failed oracle leaves the substring match in charge")
}

func TestClearingSearchSkipsOracle(t *testing.T) {
	oracle := &fakeOracle{ids: []int64{4}}
	s, _, timer := newTestSync(oracle)
	s.Seed(models.FilterSpec{Query: "mys", IDFilter: []int64{4}, Page: 1})

	s.SetSearchDraft("")
	timer.fire()

	assert.Empty(t, oracle.Queries())
	got := s.Spec()
	assert.Empty(t, got.Query)
	assert.Nil(t, got.IDFilter)
}

func TestPriceDragIsLocalUntilRelease(t *testing.T) {
	s, bar, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{Page: 1})

	var notified int
	s.Subscribe(func(models.FilterSpec) { notified++ })

	s.BeginPriceDrag()
	s.UpdatePriceDrag(intPtr(100), intPtr(800))
	s.UpdatePriceDrag(intPtr(150), intPtr(750))

	min, max := s.PriceRange()
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 150, *min)
	assert.Equal(t, 750, *max)
	assert.Empty(t, bar.Writes(), "dragging must not write the URL")
	assert.Zero(t, notified, "dragging must not fetch")

	s.EndPriceDrag(intPtr(150), intPtr(750))

	got := s.Spec()
	require.NotNil(t, got.MinPrice)
	assert.Equal(t, 150, *got.MinPrice)
	assert.Equal(t, 750, *got.MaxPrice)
	assert.Equal(t, 1, got.Page)
	assert.Len(t, bar.Writes(), 1)
	assert.Equal(t, 1, notified)

	// after commit the slider reads from the store again
	min, max = s.PriceRange()
	assert.Equal(t, 150, *min)
	assert.Equal(t, 750, *max)
}

func TestUpdatePriceDragIgnoredOutsideDrag(t *testing.T) {
	s, _, _ := newTestSync(nil)
	s.Seed(models.FilterSpec{MinPrice: intPtr(200), Page: 1})

	s.UpdatePriceDrag(intPtr(50), nil)

	min, _ := s.PriceRange()
	require.NotNil(t, min)
	assert.Equal(t, 200, *min)
}

func intPtr(n int) *int { return &n }
