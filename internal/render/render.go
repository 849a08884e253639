// Package render produces the markup shown for a workout: the list row and
// the marker popup text.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"backend-workoutmap/internal/workout"
)

type metric struct {
	Icon  string
	Value string
	Unit  string
}

type rowData struct {
	ID          string
	Kind        workout.Kind
	Description string
	Details     []metric
}

var rowTemplate = template.Must(template.New("row").Parse(`<li class="workout workout--{{.Kind}}" data-id="{{.ID}}">
  <h2 class="workout__title">{{.Description}}</h2>
{{- range .Details}}
  <div class="workout__details">
    <span class="workout__icon">{{.Icon}}</span>
    <span class="workout__value">{{.Value}}</span>
    <span class="workout__unit">{{.Unit}}</span>
  </div>
{{- end}}
</li>`))

func Icon(kind workout.Kind) string {
	if kind == workout.KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// StyleClass is the popup class for a marker, e.g. "running-popup".
func StyleClass(kind workout.Kind) string {
	return string(kind) + "-popup"
}

func Popup(w workout.Workout) string {
	return Icon(w.Kind()) + " " + w.Description()
}

// Row renders the list item for w.
func Row(w workout.Workout) (string, error) {
	data := rowData{
		ID:          w.ID(),
		Kind:        w.Kind(),
		Description: w.Description(),
		Details: []metric{
			{Icon: Icon(w.Kind()), Value: number(w.DistanceKm()), Unit: "km"},
			{Icon: "⏱", Value: number(w.DurationMin()), Unit: "min"},
		},
	}

	switch v := w.(type) {
	case *workout.Running:
		data.Details = append(data.Details,
			metric{Icon: "⚡️", Value: fixed(v.Pace()), Unit: "min/km"},
			metric{Icon: "🦶🏼", Value: number(v.Cadence()), Unit: "spm"},
		)
	case *workout.Cycling:
		data.Details = append(data.Details,
			metric{Icon: "⚡️", Value: fixed(v.Speed()), Unit: "km/h"},
			metric{Icon: "⛰", Value: number(v.ElevationGain()), Unit: "m"},
		)
	}

	var buf bytes.Buffer
	if err := rowTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render row %s: %w", w.ID(), err)
	}
	return buf.String(), nil
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
