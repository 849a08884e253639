package workout

import (
	"errors"
	"fmt"

	"backend-workoutmap/internal/shared/geo"
)

var ErrInvalidRecord = errors.New("invalid workout record")

func ToRecord(w Workout) Record {
	rec := Record{
		ID:          w.ID(),
		Kind:        w.Kind(),
		CreatedAt:   w.CreatedAt(),
		DistanceKm:  w.DistanceKm(),
		DurationMin: w.DurationMin(),
		Coordinates: w.Coords().Pair(),
		ClickCount:  w.ClickCount(),
		Description: w.Description(),
	}
	switch v := w.(type) {
	case *Running:
		rec.CadenceSpm = float64Ptr(v.cadenceSpm)
		rec.PaceMinPerKm = float64Ptr(v.paceMinPerKm)
	case *Cycling:
		rec.ElevationGainM = float64Ptr(v.elevationGainM)
		rec.SpeedKmPerH = float64Ptr(v.speedKmPerH)
	}
	return rec
}

func ToRecords(ws []Workout) []Record {
	out := make([]Record, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToRecord(w))
	}
	return out
}

// FromRecord rehydrates a stored record into its variant. Derived values and
// the description are taken from the record as stored.
func FromRecord(rec Record) (Workout, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	b := base{
		id:          rec.ID,
		createdAt:   rec.CreatedAt,
		distanceKm:  rec.DistanceKm,
		durationMin: rec.DurationMin,
		coords:      geo.FromPair(rec.Coordinates),
		clicks:      rec.ClickCount,
		description: rec.Description,
	}

	switch rec.Kind {
	case KindRunning:
		if rec.CadenceSpm == nil || rec.PaceMinPerKm == nil {
			return nil, fmt.Errorf("%w: running %s lacks cadence or pace", ErrInvalidRecord, rec.ID)
		}
		return &Running{base: b, cadenceSpm: *rec.CadenceSpm, paceMinPerKm: *rec.PaceMinPerKm}, nil
	case KindCycling:
		if rec.ElevationGainM == nil || rec.SpeedKmPerH == nil {
			return nil, fmt.Errorf("%w: cycling %s lacks elevation or speed", ErrInvalidRecord, rec.ID)
		}
		return &Cycling{base: b, elevationGainM: *rec.ElevationGainM, speedKmPerH: *rec.SpeedKmPerH}, nil
	}
	return nil, fmt.Errorf("%w: kind %q", ErrInvalidRecord, rec.Kind)
}

func float64Ptr(v float64) *float64 {
	return &v
}
