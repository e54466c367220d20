package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mapty/internal/modules/workout/domain"
	"mapty/internal/modules/workout/dto"
	"mapty/internal/platform/clock"
	apperrors "mapty/internal/platform/errors"
	"mapty/internal/platform/id"
)

type WorkoutService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewWorkoutService(clock clock.Clock, idGen id.Generator) *WorkoutService {
	return &WorkoutService{clock: clock, idGen: idGen}
}

// ParseForm converts raw form values into a submission at the given point.
// Blank or non-numeric fields become NaN and fail validation in Build.
func ParseForm(values dto.FormValues, at dto.LatLng) dto.SubmitInput {
	return dto.SubmitInput{
		Type:      strings.ToLower(strings.TrimSpace(values.Type)),
		At:        at,
		Distance:  parseNumber(values.Distance),
		Duration:  parseNumber(values.Duration),
		Cadence:   parseNumber(values.Cadence),
		Elevation: parseNumber(values.Elevation),
	}
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Build validates a submission and constructs the matching variant.
// Distance, duration and cadence must be finite and positive; elevation gain
// must be finite and non-negative.
func (s *WorkoutService) Build(input dto.SubmitInput) (domain.Workout, error) {
	kind := domain.Kind(input.Type)
	if err := kind.Validate(); err != nil {
		return domain.Workout{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	coords := domain.Coords{Lat: input.At.Lat, Lng: input.At.Lng}

	metric := input.Cadence
	if kind == domain.KindCycling {
		metric = input.Elevation
	}
	if err := domain.ValidateMeasurements(kind, input.Distance, input.Duration, metric); err != nil {
		return domain.Workout{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if kind == domain.KindRunning {
		return domain.NewRunning(s.idGen.New(), s.clock.Now(), coords, input.Distance, input.Duration, input.Cadence), nil
	}
	return domain.NewCycling(s.idGen.New(), s.clock.Now(), coords, input.Distance, input.Duration, input.Elevation), nil
}
