package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MarshalJSON writes coordinates as a [lat, lng] pair.
func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coords) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("decode coords: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode coords: expected 2 values, got %d", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

// Record is the persisted shape of a workout: every field as it was when
// written, with no schema tag.
type Record struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Coords        Coords    `json:"coords"`
	Distance      float64   `json:"distance"`
	Duration      float64   `json:"duration"`
	Type          Kind      `json:"type"`
	Description   string    `json:"description"`
	Cadence       *float64  `json:"cadence,omitempty"`
	Pace          *float64  `json:"pace,omitempty"`
	ElevationGain *float64  `json:"elevationGain,omitempty"`
	Speed         *float64  `json:"speed,omitempty"`
}

func (w Workout) Record() Record {
	r := Record{
		ID:          w.id,
		Date:        w.date,
		Coords:      w.coords,
		Distance:    w.distance,
		Duration:    w.duration,
		Type:        w.kind,
		Description: w.description,
	}
	if run, ok := w.Running(); ok {
		r.Cadence = &run.Cadence
		r.Pace = &run.Pace
	}
	if cyc, ok := w.Cycling(); ok {
		r.ElevationGain = &cyc.ElevationGain
		r.Speed = &cyc.Speed
	}
	return r
}

// Rehydrate rebuilds a workout from its record. The stored id, date and
// description are kept; the derived metric is recomputed from its inputs,
// which must pass ValidateMeasurements.
func Rehydrate(r Record) (Workout, error) {
	if err := r.Type.Validate(); err != nil {
		return Workout{}, err
	}
	if strings.TrimSpace(r.ID) == "" {
		return Workout{}, fmt.Errorf("id is required")
	}

	var w Workout
	switch r.Type {
	case KindRunning:
		if r.Cadence == nil {
			return Workout{}, fmt.Errorf("running workout %s: cadence is required", r.ID)
		}
		if err := ValidateMeasurements(r.Type, r.Distance, r.Duration, *r.Cadence); err != nil {
			return Workout{}, fmt.Errorf("running workout %s: %w", r.ID, err)
		}
		w = NewRunning(r.ID, r.Date, r.Coords, r.Distance, r.Duration, *r.Cadence)
	case KindCycling:
		if r.ElevationGain == nil {
			return Workout{}, fmt.Errorf("cycling workout %s: elevation gain is required", r.ID)
		}
		if err := ValidateMeasurements(r.Type, r.Distance, r.Duration, *r.ElevationGain); err != nil {
			return Workout{}, fmt.Errorf("cycling workout %s: %w", r.ID, err)
		}
		w = NewCycling(r.ID, r.Date, r.Coords, r.Distance, r.Duration, *r.ElevationGain)
	}
	if r.Description != "" {
		w.description = r.Description
	}
	return w, nil
}
