package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

func (k Kind) Validate() error {
	switch k {
	case KindRunning, KindCycling:
		return nil
	default:
		return fmt.Errorf("unsupported workout type %q", string(k))
	}
}

func (k Kind) Icon() string {
	switch k {
	case KindRunning:
		return "🏃‍♂️"
	case KindCycling:
		return "🚴‍♀️"
	default:
		return ""
	}
}

// ValidateMeasurements checks the numeric inputs of a workout. Distance,
// duration and cadence must be finite and positive; elevation gain must be
// finite and may be zero. metric is the cadence or the elevation gain,
// depending on kind.
func ValidateMeasurements(kind Kind, distance, duration, metric float64) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if !allFinite(distance, duration, metric) {
		return fmt.Errorf("measurements must be finite numbers")
	}
	if distance <= 0 || duration <= 0 {
		return fmt.Errorf("distance and duration must be positive")
	}
	switch kind {
	case KindRunning:
		if metric <= 0 {
			return fmt.Errorf("cadence must be positive")
		}
	case KindCycling:
		if metric < 0 {
			return fmt.Errorf("elevation gain must not be negative")
		}
	}
	return nil
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64
	Lng float64
}

// Running is the payload of a running workout.
type Running struct {
	Cadence float64 // steps/min
	Pace    float64 // min/km
}

// Cycling is the payload of a cycling workout.
type Cycling struct {
	ElevationGain float64 // m
	Speed         float64 // km/h
}

// Workout is one logged activity. Exactly one of running or cycling is set,
// selected by kind. Values are immutable once built.
type Workout struct {
	id          string
	date        time.Time
	coords      Coords
	distance    float64
	duration    float64
	kind        Kind
	description string
	running     *Running
	cycling     *Cycling
}

// NewRunning builds a running workout. Inputs are trusted; callers validate.
func NewRunning(id string, date time.Time, coords Coords, distance, duration, cadence float64) Workout {
	return Workout{
		id:          id,
		date:        date,
		coords:      coords,
		distance:    distance,
		duration:    duration,
		kind:        KindRunning,
		description: Describe(KindRunning, date),
		running:     &Running{Cadence: cadence, Pace: Pace(duration, distance)},
	}
}

// NewCycling builds a cycling workout. Inputs are trusted; callers validate.
func NewCycling(id string, date time.Time, coords Coords, distance, duration, elevationGain float64) Workout {
	return Workout{
		id:          id,
		date:        date,
		coords:      coords,
		distance:    distance,
		duration:    duration,
		kind:        KindCycling,
		description: Describe(KindCycling, date),
		cycling:     &Cycling{ElevationGain: elevationGain, Speed: Speed(distance, duration)},
	}
}

// Pace is minutes per kilometre.
func Pace(duration, distance float64) float64 {
	return duration / distance
}

// Speed is kilometres per hour.
func Speed(distance, duration float64) float64 {
	return distance / (duration / 60)
}

// Describe renders "<Kind> on <Month> <day>" from the local calendar date.
func Describe(kind Kind, date time.Time) string {
	name := string(kind)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s on %s %d", name, date.Month().String(), date.Day())
}

func (w Workout) ID() string          { return w.id }
func (w Workout) Date() time.Time     { return w.date }
func (w Workout) Coords() Coords      { return w.coords }
func (w Workout) Distance() float64   { return w.distance }
func (w Workout) Duration() float64   { return w.duration }
func (w Workout) Kind() Kind          { return w.kind }
func (w Workout) Description() string { return w.description }
func (w Workout) Icon() string        { return w.kind.Icon() }

func (w Workout) Running() (Running, bool) {
	if w.running == nil {
		return Running{}, false
	}
	return *w.running, true
}

func (w Workout) Cycling() (Cycling, bool) {
	if w.cycling == nil {
		return Cycling{}, false
	}
	return *w.cycling, true
}

// Metric recomputes the kind's derived value: pace for running, speed for cycling.
func (w Workout) Metric() float64 {
	switch w.kind {
	case KindRunning:
		return Pace(w.duration, w.distance)
	case KindCycling:
		return Speed(w.distance, w.duration)
	default:
		return 0
	}
}
