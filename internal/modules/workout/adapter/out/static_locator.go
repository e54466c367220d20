package out

import (
	"context"

	"mapty/internal/modules/workout/dto"
	workoutout "mapty/internal/modules/workout/port/out"
	apperrors "mapty/internal/platform/errors"
)

// StaticLocator reports a fixed home position. A nil home behaves like a
// denied geolocation permission.
type StaticLocator struct {
	home *dto.LatLng
}

func NewStaticLocator(home *dto.LatLng) workoutout.Locator {
	return StaticLocator{home: home}
}

func (l StaticLocator) CurrentPosition(ctx context.Context) (dto.LatLng, error) {
	if err := ctx.Err(); err != nil {
		return dto.LatLng{}, err
	}
	if l.home == nil {
		return dto.LatLng{}, apperrors.ErrLocationUnavailable
	}
	return *l.home, nil
}
