package out

import (
	"context"

	"mapty/internal/modules/journal/domain"
	journalout "mapty/internal/modules/journal/port/out"
	workoutin "mapty/internal/modules/workout/port/in"
)

type WorkoutSourceAdapter struct {
	workouts workoutin.Usecase
}

func NewWorkoutSourceAdapter(workouts workoutin.Usecase) journalout.WorkoutSource {
	return &WorkoutSourceAdapter{workouts: workouts}
}

func (a *WorkoutSourceAdapter) Entries(_ context.Context) ([]domain.Entry, error) {
	outputs := a.workouts.Workouts()
	entries := make([]domain.Entry, 0, len(outputs))
	for _, w := range outputs {
		entries = append(entries, domain.Entry{
			ID:        w.ID,
			Type:      w.Type,
			Icon:      w.Icon,
			Title:     w.Description,
			Date:      w.Date,
			Lat:       w.Lat,
			Lng:       w.Lng,
			Distance:  w.Distance,
			Duration:  w.Duration,
			Cadence:   w.Cadence,
			Pace:      w.Pace,
			Elevation: w.ElevationGain,
			Speed:     w.Speed,
		})
	}
	return entries, nil
}
