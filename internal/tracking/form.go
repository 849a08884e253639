package tracking

import (
	"math"
	"strconv"
	"strings"

	"backend-workoutmap/internal/workout"
)

const invalidInputMessage = "Inputs have to be positive numbers!"

// ValidationError is returned for submissions that fail the numeric checks.
type ValidationError struct {
	Kind   workout.Kind
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid " + string(e.Kind) + " input: " + strings.Join(e.Fields, ", ")
}

type submission struct {
	kind        workout.Kind
	distanceKm  float64
	durationMin float64
	metric      float64
}

// number coerces a form value the way a browser's unary plus does: blank is
// zero, anything unparsable is NaN.
func number(f Field) float64 {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func parseForm(in FormInput) (submission, error) {
	kind, err := workout.ParseKind(in.Type)
	if err != nil {
		return submission{}, err
	}

	sub := submission{
		kind:        kind,
		distanceKm:  number(in.Distance),
		durationMin: number(in.Duration),
	}
	metricName := "elevation"
	sub.metric = number(in.Elevation)
	if kind == workout.KindRunning {
		metricName = "cadence"
		sub.metric = number(in.Cadence)
	}

	var bad []string
	check := func(name string, v float64, positive bool) {
		if !finite(v) || (positive && v <= 0) {
			bad = append(bad, name)
		}
	}
	check("distance", sub.distanceKm, true)
	check("duration", sub.durationMin, true)
	check(metricName, sub.metric, kind == workout.KindRunning)
	if len(bad) == 0 {
		// Extreme but finite inputs can still overflow the derived metric.
		derived, name := workout.Speed(sub.distanceKm, sub.durationMin), "speed"
		if kind == workout.KindRunning {
			derived, name = workout.Pace(sub.distanceKm, sub.durationMin), "pace"
		}
		check(name, derived, true)
	}

	if len(bad) > 0 {
		return submission{}, &ValidationError{Kind: kind, Fields: bad}
	}
	return sub, nil
}
