package out

import (
	"context"

	"mapty/internal/modules/journal/domain"
)

// WorkoutSource lists recorded workouts in creation order.
type WorkoutSource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
}

type TrackWriter interface {
	WriteWaypoints(ctx context.Context, path string, entries []domain.Entry) error
}

type NoteStore interface {
	Save(ctx context.Context, dir string, entry domain.Entry, body string) (string, error)
}
