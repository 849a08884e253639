package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"backend-workoutmap/internal/render"
	"backend-workoutmap/internal/shared/geo"
	"backend-workoutmap/internal/workout"
)

const (
	DefaultMapZoom   = 13
	DefaultFocusZoom = 12

	locationFailedMessage = "Could not get your position"
	pickLocationMessage   = "Click on the map to choose where the workout happened"
)

var ErrNoPendingClick = errors.New("no map location selected")

// Deps are the capabilities the Service drives.
type Deps struct {
	Store   Store
	Map     MapView
	List    ListView
	Form    FormView
	Alerts  Alerter
	Locator Locator

	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

type Options struct {
	MapZoom   int
	FocusZoom int
}

// Service is the workout tracker. It owns the session's workout list, the
// pending map click and the map readiness flag. Events are serialized.
type Service struct {
	deps Deps
	opts Options
	log  *slog.Logger

	mu       sync.Mutex
	workouts []workout.Workout
	pending  *geo.Coords
	mapReady bool
}

func NewService(deps Deps, opts Options) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if opts.MapZoom == 0 {
		opts.MapZoom = DefaultMapZoom
	}
	if opts.FocusZoom == 0 {
		opts.FocusZoom = DefaultFocusZoom
	}
	return &Service{deps: deps, opts: opts, log: deps.Logger.With("component", "tracking")}
}

// Initialize restores stored workouts, renders their rows and requests the
// device position. Markers are rendered once the position arrives.
func (s *Service) Initialize(ctx context.Context) {
	stored, err := s.deps.Store.Load(ctx)
	if err != nil {
		storageFailures.WithLabelValues("load").Inc()
		s.log.Warn("starting without stored workouts", "error", err)
		stored = nil
	}

	s.mu.Lock()
	s.workouts = stored
	for _, w := range stored {
		s.deps.List.RenderRow(w)
	}
	s.mu.Unlock()

	s.deps.Locator.Locate(s.onLocated, s.onLocateFailed)
}

func (s *Service) onLocated(c geo.Coords) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deps.Map.CenterOn(c, s.opts.MapZoom, false)
	s.deps.Map.OnClick(s.MapClick)
	s.mapReady = true
	for _, w := range s.workouts {
		s.renderMarker(w)
	}
	s.log.Info("map ready", "lat", c.Lat, "lng", c.Lng, "workouts", len(s.workouts))
}

func (s *Service) onLocateFailed(err error) {
	s.log.Warn("position unavailable", "error", err)
	s.deps.Alerts.Alert(locationFailedMessage)
}

// MapClick records c as the pending location and opens the form.
func (s *Service) MapClick(c geo.Coords) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = &c
	s.deps.Form.Show()
	s.deps.Form.FocusDistance()
}

// ChangeType switches the visible metric field.
func (s *Service) ChangeType(kindName string) error {
	kind, err := workout.ParseKind(kindName)
	if err != nil {
		return err
	}
	s.deps.Form.ShowMetricField(kind)
	return nil
}

// Submit validates the form and, when it passes, records a workout at the
// pending map location.
func (s *Service) Submit(ctx context.Context, in FormInput) (workout.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		submissionsRejected.WithLabelValues("no_location").Inc()
		s.deps.Alerts.Alert(pickLocationMessage)
		return nil, ErrNoPendingClick
	}

	sub, err := parseForm(in)
	if err != nil {
		submissionsRejected.WithLabelValues("invalid").Inc()
		s.deps.Alerts.Alert(invalidInputMessage)
		return nil, err
	}

	var w workout.Workout
	now := s.deps.Now()
	switch sub.kind {
	case workout.KindRunning:
		w = workout.NewRunning(*s.pending, sub.distanceKm, sub.durationMin, sub.metric, now)
	case workout.KindCycling:
		w = workout.NewCycling(*s.pending, sub.distanceKm, sub.durationMin, sub.metric, now)
	}

	s.workouts = append(s.workouts, w)
	s.renderMarker(w)
	s.deps.List.RenderRow(w)
	s.deps.Form.Hide()
	s.pending = nil
	s.persist(ctx)

	workoutsRecorded.WithLabelValues(string(w.Kind())).Inc()
	s.log.Info("workout recorded", "id", w.ID(), "kind", w.Kind())
	return w, nil
}

// Cancel closes the form without recording anything.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	s.deps.Form.Hide()
}

// Select pans the map to the workout with the given id. Unknown ids, and
// calls made before the map is ready, are ignored.
func (s *Service) Select(ctx context.Context, id string) (workout.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mapReady {
		return nil, false
	}
	w := s.find(id)
	if w == nil {
		return nil, false
	}

	s.deps.Map.CenterOn(w.Coords(), s.opts.FocusZoom, true)
	w.Click()
	s.persist(ctx)
	return w, true
}

// Reset clears the stored list and starts over as if freshly loaded.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	// Held across Clear so no concurrent event can rewrite the old list.
	if err := s.deps.Store.Clear(ctx); err != nil {
		s.mu.Unlock()
		storageFailures.WithLabelValues("clear").Inc()
		return err
	}
	s.workouts = nil
	s.pending = nil
	s.mapReady = false
	s.deps.Map.Reset()
	s.deps.List.Clear()
	s.deps.Form.Hide()
	s.mu.Unlock()

	s.log.Info("workouts reset")
	s.Initialize(ctx)
	return nil
}

// Workouts returns the session's workouts in creation order.
func (s *Service) Workouts() []workout.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return workout.ToRecords(s.workouts)
}

// Near returns the workouts within radiusKm of c.
func (s *Service) Near(c geo.Coords, radiusKm float64) []workout.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []workout.Record{}
	for _, w := range s.workouts {
		if geo.DistanceKm(c, w.Coords()) <= radiusKm {
			out = append(out, workout.ToRecord(w))
		}
	}
	return out
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{MapReady: s.mapReady, Count: len(s.workouts)}
	if s.pending != nil {
		p := *s.pending
		st.Pending = &p
	}
	return st
}

func (s *Service) find(id string) workout.Workout {
	for _, w := range s.workouts {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

func (s *Service) renderMarker(w workout.Workout) {
	if !s.mapReady {
		return
	}
	s.deps.Map.AddMarker(w.Coords(), render.Popup(w), render.StyleClass(w.Kind()))
}

func (s *Service) persist(ctx context.Context) {
	if err := s.deps.Store.Save(ctx, s.workouts); err != nil {
		storageFailures.WithLabelValues("save").Inc()
		s.log.Error("persist workouts", "error", err)
	}
}
