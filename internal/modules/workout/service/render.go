package service

import (
	"strconv"

	"mapty/internal/modules/workout/domain"
	"mapty/internal/modules/workout/dto"
)

const (
	popupMinWidth = 100
	popupMaxWidth = 250
)

// Popup returns the marker popup options and content for w.
func Popup(w domain.Workout) (dto.PopupOptions, string) {
	opts := dto.PopupOptions{
		MinWidth:     popupMinWidth,
		MaxWidth:     popupMaxWidth,
		AutoClose:    false,
		CloseOnClick: false,
		ClassName:    string(w.Kind()) + "-popup",
	}
	return opts, w.Icon() + " " + w.Description()
}

// Entry renders the list item for w. Derived metrics are rounded to one
// decimal here and nowhere else.
func Entry(w domain.Workout) dto.Entry {
	e := dto.Entry{
		ID:    w.ID(),
		Type:  string(w.Kind()),
		Title: w.Description(),
		Details: []dto.EntryDetail{
			{Icon: w.Icon(), Value: number(w.Distance()), Unit: "km"},
			{Icon: "⏱", Value: number(w.Duration()), Unit: "min"},
		},
	}
	if run, ok := w.Running(); ok {
		e.Details = append(e.Details,
			dto.EntryDetail{Icon: "⚡️", Value: strconv.FormatFloat(run.Pace, 'f', 1, 64), Unit: "min/km"},
			dto.EntryDetail{Icon: "🦶🏼", Value: number(run.Cadence), Unit: "spm"},
		)
	}
	if cyc, ok := w.Cycling(); ok {
		e.Details = append(e.Details,
			dto.EntryDetail{Icon: "⚡️", Value: strconv.FormatFloat(cyc.Speed, 'f', 1, 64), Unit: "km/h"},
			dto.EntryDetail{Icon: "⛰", Value: number(cyc.ElevationGain), Unit: "m"},
		)
	}
	return e
}

func Output(w domain.Workout) dto.WorkoutOutput {
	out := dto.WorkoutOutput{
		ID:          w.ID(),
		Type:        string(w.Kind()),
		Icon:        w.Icon(),
		Description: w.Description(),
		Date:        w.Date(),
		Lat:         w.Coords().Lat,
		Lng:         w.Coords().Lng,
		Distance:    w.Distance(),
		Duration:    w.Duration(),
	}
	if run, ok := w.Running(); ok {
		out.Cadence = run.Cadence
		out.Pace = run.Pace
	}
	if cyc, ok := w.Cycling(); ok {
		out.ElevationGain = cyc.ElevationGain
		out.Speed = cyc.Speed
	}
	return out
}

func LatLng(c domain.Coords) dto.LatLng {
	return dto.LatLng{Lat: c.Lat, Lng: c.Lng}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
