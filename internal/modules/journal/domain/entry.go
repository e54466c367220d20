package domain

import (
	"strconv"
	"time"
)

const SchemaVersion = 1

// Entry is a finished workout as the journal sees it: enough to write a
// note, a waypoint, or a printable card.
type Entry struct {
	ID        string
	Type      string
	Icon      string
	Title     string
	Date      time.Time
	Lat       float64
	Lng       float64
	Distance  float64
	Duration  float64
	Cadence   float64
	Pace      float64
	Elevation float64
	Speed     float64
}

// Stat is one labelled figure on a card.
type Stat struct {
	Label string
	Value string
	Unit  string
}

func (e Entry) Stats() []Stat {
	stats := []Stat{
		{Label: "Distance", Value: plain(e.Distance), Unit: "km"},
		{Label: "Duration", Value: plain(e.Duration), Unit: "min"},
	}
	switch e.Type {
	case "running":
		stats = append(stats,
			Stat{Label: "Pace", Value: oneDecimal(e.Pace), Unit: "min/km"},
			Stat{Label: "Cadence", Value: plain(e.Cadence), Unit: "spm"},
		)
	case "cycling":
		stats = append(stats,
			Stat{Label: "Speed", Value: oneDecimal(e.Speed), Unit: "km/h"},
			Stat{Label: "Elevation gain", Value: plain(e.Elevation), Unit: "m"},
		)
	}
	return stats
}

func plain(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func oneDecimal(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
