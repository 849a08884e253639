package tracking

import (
	"bytes"
	"context"
	"encoding/json"

	"backend-workoutmap/internal/shared/geo"
	"backend-workoutmap/internal/workout"
)

// MapView is the interactive map widget.
type MapView interface {
	CenterOn(c geo.Coords, zoom int, animate bool)
	OnClick(handler func(geo.Coords))
	AddMarker(c geo.Coords, popup, styleClass string)
	// Reset drops every marker, the center and the click handler.
	Reset()
}

// ListView is the workout list container.
type ListView interface {
	RenderRow(w workout.Workout)
	Clear()
}

// FormView is the entry form.
type FormView interface {
	Show()
	Hide()
	FocusDistance()
	ShowMetricField(kind workout.Kind)
}

type Alerter interface {
	Alert(msg string)
}

// Locator is a one-shot position request. Exactly one of the callbacks is
// invoked per call, possibly synchronously.
type Locator interface {
	Locate(onSuccess func(geo.Coords), onError func(error))
}

// Store persists the whole workout list.
type Store interface {
	Save(ctx context.Context, workouts []workout.Workout) error
	Load(ctx context.Context) ([]workout.Workout, error)
	Clear(ctx context.Context) error
}

// Field is a raw form value. It decodes from a JSON string, number or null.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(data)
	return nil
}

// FormInput holds the submitted form fields as typed by the user.
type FormInput struct {
	Type      string `json:"type"`
	Distance  Field  `json:"distance"`
	Duration  Field  `json:"duration"`
	Cadence   Field  `json:"cadence"`
	Elevation Field  `json:"elevation"`
}

type State struct {
	MapReady bool        `json:"map_ready"`
	Pending  *geo.Coords `json:"pending,omitempty"`
	Count    int         `json:"count"`
}
