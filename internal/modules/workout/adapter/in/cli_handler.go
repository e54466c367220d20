package in

import (
	"context"

	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
)

// CLIHandler drives a started controller from command-line arguments. The
// caller runs Start and HandlePosition before using it so stored workouts
// are loaded.
type CLIHandler struct {
	usecase workoutin.Usecase
}

func NewCLIHandler(usecase workoutin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddRunning(ctx context.Context, at dto.LatLng, distance, duration, cadence float64) (dto.WorkoutOutput, error) {
	return h.usecase.Submit(ctx, dto.SubmitInput{
		Type:     "running",
		At:       at,
		Distance: distance,
		Duration: duration,
		Cadence:  cadence,
	})
}

func (h CLIHandler) AddCycling(ctx context.Context, at dto.LatLng, distance, duration, elevation float64) (dto.WorkoutOutput, error) {
	return h.usecase.Submit(ctx, dto.SubmitInput{
		Type:      "cycling",
		At:        at,
		Distance:  distance,
		Duration:  duration,
		Elevation: elevation,
	})
}

func (h CLIHandler) List() []dto.WorkoutOutput {
	return h.usecase.Workouts()
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
