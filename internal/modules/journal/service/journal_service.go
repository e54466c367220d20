package service

import (
	"context"
	"fmt"
	"strings"

	"mapty/internal/modules/journal/domain"
	journalout "mapty/internal/modules/journal/port/out"
	apperrors "mapty/internal/platform/errors"
)

type JournalService struct {
	source journalout.WorkoutSource
	tracks journalout.TrackWriter
	notes  journalout.NoteStore
}

func NewJournalService(source journalout.WorkoutSource, tracks journalout.TrackWriter, notes journalout.NoteStore) *JournalService {
	return &JournalService{source: source, tracks: tracks, notes: notes}
}

func (s *JournalService) Find(ctx context.Context, id string) (domain.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Entry{}, fmt.Errorf("%w: workout id is required", apperrors.ErrInvalidInput)
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Entry{}, fmt.Errorf("workout %s: %w", id, apperrors.ErrNotFound)
}

// Card renders e as a markdown card: a heading, the stats table and the
// location.
func Card(e domain.Entry) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s %s\n\n", e.Icon, e.Title)
	b.WriteString("| | | |\n|---|---:|---|\n")
	for _, st := range e.Stats() {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", st.Label, st.Value, st.Unit)
	}
	fmt.Fprintf(&b, "\n- Recorded: %s\n- Location: %.5f, %.5f\n- ID: `%s`\n",
		e.Date.Format("2006-01-02 15:04"), e.Lat, e.Lng, e.ID)
	return b.String()
}

func (s *JournalService) ExportGPX(ctx context.Context, path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("%w: gpx path is required", apperrors.ErrInvalidInput)
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.tracks.WriteWaypoints(ctx, path, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *JournalService) ExportNotes(ctx context.Context, dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: notes directory is required", apperrors.ErrInvalidInput)
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		path, err := s.notes.Save(ctx, dir, e, Card(e))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
