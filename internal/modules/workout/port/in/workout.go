package in

import (
	"context"

	"mapty/internal/modules/workout/dto"
)

// Usecase is the workout controller. Event methods (ShowForm, NewWorkout,
// ToggleElevationField, MoveToPopup) are driven by the UI on its event loop.
type Usecase interface {
	Start(ctx context.Context) dto.PositionRequest
	HandlePosition(ctx context.Context, result dto.PositionResult)
	ShowForm(at dto.LatLng)
	NewWorkout(ctx context.Context)
	ToggleElevationField()
	MoveToPopup(id string)
	Submit(ctx context.Context, input dto.SubmitInput) (dto.WorkoutOutput, error)
	Workouts() []dto.WorkoutOutput
	Reset(ctx context.Context) error
}
