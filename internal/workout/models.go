package workout

import (
	"time"

	"backend-workoutmap/internal/shared/geo"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// Workout is a logged activity. The set of implementations is closed:
// *Running and *Cycling.
type Workout interface {
	ID() string
	Kind() Kind
	CreatedAt() time.Time
	DistanceKm() float64
	DurationMin() float64
	Coords() geo.Coords
	Description() string
	ClickCount() int
	Click()

	sealed()
}

type base struct {
	id          string
	createdAt   time.Time
	distanceKm  float64
	durationMin float64
	coords      geo.Coords
	clicks      int
	description string
}

func (b *base) ID() string           { return b.id }
func (b *base) CreatedAt() time.Time { return b.createdAt }
func (b *base) DistanceKm() float64  { return b.distanceKm }
func (b *base) DurationMin() float64 { return b.durationMin }
func (b *base) Coords() geo.Coords   { return b.coords }
func (b *base) Description() string  { return b.description }
func (b *base) ClickCount() int      { return b.clicks }

// Click bumps the interaction counter. It has no other effect.
func (b *base) Click() { b.clicks++ }

func (b *base) sealed() {}

type Running struct {
	base
	cadenceSpm   float64
	paceMinPerKm float64
}

func (r *Running) Kind() Kind       { return KindRunning }
func (r *Running) Cadence() float64 { return r.cadenceSpm }

// Pace is in min/km.
func (r *Running) Pace() float64 { return r.paceMinPerKm }

type Cycling struct {
	base
	elevationGainM float64
	speedKmPerH    float64
}

func (c *Cycling) Kind() Kind             { return KindCycling }
func (c *Cycling) ElevationGain() float64 { return c.elevationGainM }

// Speed is in km/h.
func (c *Cycling) Speed() float64 { return c.speedKmPerH }

// Record is the persisted, plain-data shape of a Workout.
type Record struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	CreatedAt      time.Time  `json:"createdAt"`
	DistanceKm     float64    `json:"distanceKm"`
	DurationMin    float64    `json:"durationMin"`
	Coordinates    [2]float64 `json:"coordinates"`
	ClickCount     int        `json:"clickCount"`
	Description    string     `json:"description"`
	CadenceSpm     *float64   `json:"cadenceSpm,omitempty"`
	PaceMinPerKm   *float64   `json:"paceMinPerKm,omitempty"`
	ElevationGainM *float64   `json:"elevationGainM,omitempty"`
	SpeedKmPerH    *float64   `json:"speedKmPerH,omitempty"`
}
