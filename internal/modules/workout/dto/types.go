package dto

import (
	"context"
	"time"
)

// LatLng is a coordinate pair as exchanged with the map and locator.
type LatLng struct {
	Lat float64
	Lng float64
}

// PositionResult is the outcome of the one-shot position lookup.
type PositionResult struct {
	Position LatLng
	Err      error
}

// PositionRequest performs the position lookup. Callers run it off the
// event loop and hand the result back to the controller.
type PositionRequest func(ctx context.Context) PositionResult

// FormValues are the raw form inputs, unparsed.
type FormValues struct {
	Type      string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

type SubmitInput struct {
	Type      string
	At        LatLng
	Distance  float64
	Duration  float64
	Cadence   float64
	Elevation float64
}

type WorkoutOutput struct {
	ID            string
	Type          string
	Icon          string
	Description   string
	Date          time.Time
	Lat           float64
	Lng           float64
	Distance      float64
	Duration      float64
	Cadence       float64
	Pace          float64
	ElevationGain float64
	Speed         float64
}

type PopupOptions struct {
	MinWidth     int
	MaxWidth     int
	AutoClose    bool
	CloseOnClick bool
	ClassName    string
}

type PanOptions struct {
	Animate  bool
	Duration time.Duration
}

// EntryDetail is one icon/value/unit cell of a list entry.
type EntryDetail struct {
	Icon  string
	Value string
	Unit  string
}

// Entry is the rendered list item for a workout.
type Entry struct {
	ID      string
	Type    string
	Title   string
	Details []EntryDetail
}
