package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mapty/internal/modules/journal/domain"
	journalout "mapty/internal/modules/journal/port/out"
	"mapty/internal/platform/markdown"
	"mapty/internal/platform/slug"
)

type VaultNoteStore struct{}

func NewVaultNoteStore() journalout.NoteStore {
	return VaultNoteStore{}
}

// Save writes the note under dir/YYYY/MM, named after the workout's id and
// title so re-exports overwrite instead of duplicating.
func (VaultNoteStore) Save(_ context.Context, dir string, entry domain.Entry, body string) (string, error) {
	date := entry.Date
	target := filepath.Join(dir, date.Format("2006"), date.Format("01"))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create note dir: %w", err)
	}
	path := filepath.Join(target, fmt.Sprintf("%s-%s.md", entry.ID, slug.Make(entry.Title)))

	fields := []markdown.Field{
		{Key: "schema_version", Value: domain.SchemaVersion},
		{Key: "id", Value: entry.ID},
		{Key: "type", Value: entry.Type},
		{Key: "date", Value: entry.Date.Format(time.RFC3339)},
		{Key: "coords", Value: []float64{entry.Lat, entry.Lng}},
		{Key: "distance_km", Value: entry.Distance},
		{Key: "duration_min", Value: entry.Duration},
	}
	switch entry.Type {
	case "running":
		fields = append(fields,
			markdown.Field{Key: "cadence_spm", Value: entry.Cadence},
			markdown.Field{Key: "pace_min_per_km", Value: entry.Pace},
		)
	case "cycling":
		fields = append(fields,
			markdown.Field{Key: "elevation_gain_m", Value: entry.Elevation},
			markdown.Field{Key: "speed_km_per_h", Value: entry.Speed},
		)
	}
	rendered, err := markdown.RenderFrontmatter(fields, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write workout note: %w", err)
	}
	return path, nil
}
