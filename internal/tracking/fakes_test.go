package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"backend-workoutmap/internal/shared/geo"
	"backend-workoutmap/internal/storage"
	"backend-workoutmap/internal/workout"
)

var errTrack = errors.New("track error")

type marker struct {
	Coords geo.Coords
	Popup  string
	Class  string
}

type center struct {
	Coords  geo.Coords
	Zoom    int
	Animate bool
}

// fakeDisplay records every UI effect.
type fakeDisplay struct {
	mu          sync.Mutex
	centers     []center
	markers     []marker
	rows        []string
	alerts      []string
	formVisible bool
	focused     int
	metricKind  workout.Kind
	mapResets   int
	listClears  int
	clickFn     func(geo.Coords)
}

func (f *fakeDisplay) CenterOn(c geo.Coords, zoom int, animate bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.centers = append(f.centers, center{c, zoom, animate})
}

func (f *fakeDisplay) OnClick(handler func(geo.Coords)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clickFn = handler
}

func (f *fakeDisplay) AddMarker(c geo.Coords, popup, styleClass string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markers = append(f.markers, marker{c, popup, styleClass})
}

func (f *fakeDisplay) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mapResets++
	f.centers = nil
	f.markers = nil
	f.clickFn = nil
}

func (f *fakeDisplay) RenderRow(w workout.Workout) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, w.ID())
}

func (f *fakeDisplay) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listClears++
	f.rows = nil
}

func (f *fakeDisplay) Show() { f.formVisible = true }
func (f *fakeDisplay) Hide() { f.formVisible = false }
func (f *fakeDisplay) FocusDistance() { f.focused++ }

func (f *fakeDisplay) ShowMetricField(kind workout.Kind) { f.metricKind = kind }

func (f *fakeDisplay) Alert(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, msg)
}

// click simulates the map widget delivering a click.
func (f *fakeDisplay) click(c geo.Coords) bool {
	f.mu.Lock()
	fn := f.clickFn
	f.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(c)
	return true
}

// countingKV counts writes to the underlying memory store.
type countingKV struct {
	*storage.MemoryKV
	sets int
	err  error
}

func (c *countingKV) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	return c.MemoryKV.Set(ctx, key, value)
}

func (c *countingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.MemoryKV.Get(ctx, key)
}

type harness struct {
	svc     *Service
	ui      *fakeDisplay
	kv      *countingKV
	store   *storage.Service
	locator *DeferredLocator
	now     time.Time

	// beforeClear runs inside Store.Clear.
	beforeClear func()
}

type hookedStore struct {
	*storage.Service
	h *harness
}

func (s hookedStore) Clear(ctx context.Context) error {
	if s.h.beforeClear != nil {
		s.h.beforeClear()
	}
	return s.Service.Clear(ctx)
}

func newHarness() *harness {
	h := &harness{
		ui:      &fakeDisplay{},
		kv:      &countingKV{MemoryKV: storage.NewMemoryKV()},
		locator: NewDeferredLocator(),
		now:     time.Date(2024, time.April, 14, 9, 30, 0, 0, time.UTC),
	}
	h.store = storage.NewService(h.kv, "")
	h.svc = NewService(Deps{
		Store:   hookedStore{Service: h.store, h: h},
		Map:     h.ui,
		List:    h.ui,
		Form:    h.ui,
		Alerts:  h.ui,
		Locator: h.locator,
		Now: func() time.Time {
			h.now = h.now.Add(time.Second)
			return h.now
		},
	}, Options{})
	return h
}

// ready initializes the tracker and resolves the position request.
func (h *harness) ready(c geo.Coords) {
	h.svc.Initialize(context.Background())
	if err := h.locator.Resolve(c); err != nil {
		panic(err)
	}
}

type failingStore struct{}

func (failingStore) Save(context.Context, []workout.Workout) error { return errTrack }
func (failingStore) Load(context.Context) ([]workout.Workout, error) { return nil, errTrack }
func (failingStore) Clear(context.Context) error { return errTrack }
