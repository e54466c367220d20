package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tkrajina/gpxgo/gpx"

	"mapty/internal/modules/journal/domain"
	journalout "mapty/internal/modules/journal/port/out"
)

type GPXWriter struct{}

func NewGPXWriter() journalout.TrackWriter {
	return GPXWriter{}
}

// WriteWaypoints writes one waypoint per workout. Workouts carry a single
// position, so there are no tracks.
func (GPXWriter) WriteWaypoints(_ context.Context, path string, entries []domain.Entry) error {
	doc := gpx.GPX{
		Version: "1.1",
		Creator: "mapty",
		Name:    "mapty workouts",
	}
	for _, e := range entries {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point:       gpx.Point{Latitude: e.Lat, Longitude: e.Lng},
			Timestamp:   e.Date.UTC(),
			Name:        e.Title,
			Description: describe(e),
			Type:        e.Type,
			Symbol:      e.Type,
			Comment:     e.ID,
		})
	}
	payload, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encode gpx: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create gpx dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write gpx: %w", err)
	}
	return nil
}

func describe(e domain.Entry) string {
	out := ""
	for i, st := range e.Stats() {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %s %s", st.Label, st.Value, st.Unit)
	}
	return out
}
