package stream

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"backend-workoutmap/internal/render"
	"backend-workoutmap/internal/shared/geo"
	"backend-workoutmap/internal/workout"
)

var ErrMapNotReady = errors.New("map is not ready")

// Event is a UI instruction sent to the browser.
type Event struct {
	Type       string       `json:"type"`
	Coords     *geo.Coords  `json:"coords,omitempty"`
	Zoom       int          `json:"zoom,omitempty"`
	Animate    bool         `json:"animate,omitempty"`
	ID         string       `json:"id,omitempty"`
	Kind       workout.Kind `json:"kind,omitempty"`
	HTML       string       `json:"html,omitempty"`
	Popup      string       `json:"popup,omitempty"`
	StyleClass string       `json:"style_class,omitempty"`
	Message    string       `json:"message,omitempty"`
}

const (
	EventMapCenter  = "map.center"
	EventMapMarker  = "map.marker"
	EventMapReset   = "map.reset"
	EventListRow    = "list.row"
	EventListClear  = "list.clear"
	EventFormShow   = "form.show"
	EventFormHide   = "form.hide"
	EventFormFocus  = "form.focus"
	EventFormMetric = "form.metric"
	EventAlert      = "alert"
)

// View renders the map, the workout list, the form and alerts by
// broadcasting events on a hub topic. Map clicks come back through Click.
type View struct {
	hub   *Hub
	topic string
	log   *slog.Logger

	mu      sync.Mutex
	onClick func(geo.Coords)
}

func NewView(hub *Hub, topic string) *View {
	return &View{hub: hub, topic: topic, log: slog.Default().With("component", "view", "topic", topic)}
}

func (v *View) Topic() string {
	return v.topic
}

func (v *View) CenterOn(c geo.Coords, zoom int, animate bool) {
	v.emit(Event{Type: EventMapCenter, Coords: &c, Zoom: zoom, Animate: animate})
}

func (v *View) OnClick(handler func(geo.Coords)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onClick = handler
}

func (v *View) AddMarker(c geo.Coords, popup, styleClass string) {
	v.emit(Event{Type: EventMapMarker, Coords: &c, Popup: popup, StyleClass: styleClass})
}

func (v *View) Reset() {
	v.mu.Lock()
	v.onClick = nil
	v.mu.Unlock()
	v.emit(Event{Type: EventMapReset})
}

// Click hands a map click to the registered handler.
func (v *View) Click(c geo.Coords) error {
	v.mu.Lock()
	handler := v.onClick
	v.mu.Unlock()

	if handler == nil {
		return ErrMapNotReady
	}
	handler(c)
	return nil
}

func (v *View) RenderRow(w workout.Workout) {
	html, err := render.Row(w)
	if err != nil {
		v.log.Error("render row", "id", w.ID(), "error", err)
		return
	}
	v.emit(Event{Type: EventListRow, ID: w.ID(), Kind: w.Kind(), HTML: html})
}

func (v *View) Clear() {
	v.emit(Event{Type: EventListClear})
}

func (v *View) Show() {
	v.emit(Event{Type: EventFormShow})
}

func (v *View) Hide() {
	v.emit(Event{Type: EventFormHide})
}

func (v *View) FocusDistance() {
	v.emit(Event{Type: EventFormFocus, ID: "distance"})
}

func (v *View) ShowMetricField(kind workout.Kind) {
	v.emit(Event{Type: EventFormMetric, Kind: kind})
}

func (v *View) Alert(msg string) {
	v.emit(Event{Type: EventAlert, Message: msg})
}

func (v *View) emit(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		v.log.Error("encode event", "type", e.Type, "error", err)
		return
	}
	v.hub.Broadcast(v.topic, payload)
}
