package workout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backend-workoutmap/internal/shared/geo"
)

var ErrUnknownKind = errors.New("unknown workout type")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindRunning, KindCycling:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title is the kind with its first letter upper-cased.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Pace returns minutes per kilometre.
func Pace(distanceKm, durationMin float64) float64 {
	return durationMin / distanceKm
}

// Speed returns kilometres per hour.
func Speed(distanceKm, durationMin float64) float64 {
	return distanceKm / (durationMin / 60)
}

// Describe builds "<Type> on <Month> <Day>" in createdAt's location.
func Describe(kind Kind, createdAt time.Time) string {
	return fmt.Sprintf("%s on %s %d", kind.Title(), createdAt.Month(), createdAt.Day())
}

// NewID keeps the last ten digits of the creation time in Unix milliseconds.
// Two workouts created in the same millisecond share an id.
func NewID(createdAt time.Time) string {
	id := strconv.FormatInt(createdAt.UnixMilli(), 10)
	if len(id) > 10 {
		id = id[len(id)-10:]
	}
	return id
}

func newBase(kind Kind, coords geo.Coords, distanceKm, durationMin float64, createdAt time.Time) base {
	return base{
		id:          NewID(createdAt),
		createdAt:   createdAt,
		distanceKm:  distanceKm,
		durationMin: durationMin,
		coords:      coords,
		description: Describe(kind, createdAt),
	}
}

// NewRunning does not validate its inputs.
func NewRunning(coords geo.Coords, distanceKm, durationMin, cadenceSpm float64, createdAt time.Time) *Running {
	return &Running{
		base:         newBase(KindRunning, coords, distanceKm, durationMin, createdAt),
		cadenceSpm:   cadenceSpm,
		paceMinPerKm: Pace(distanceKm, durationMin),
	}
}

// NewCycling does not validate its inputs.
func NewCycling(coords geo.Coords, distanceKm, durationMin, elevationGainM float64, createdAt time.Time) *Cycling {
	return &Cycling{
		base:           newBase(KindCycling, coords, distanceKm, durationMin, createdAt),
		elevationGainM: elevationGainM,
		speedKmPerH:    Speed(distanceKm, durationMin),
	}
}
