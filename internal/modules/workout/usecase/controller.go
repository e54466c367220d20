package usecase

import (
	"context"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"mapty/internal/modules/workout/domain"
	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
	workoutout "mapty/internal/modules/workout/port/out"
	"mapty/internal/modules/workout/service"
)

const (
	AlertNoLocation   = "Could not get your location"
	AlertInvalidInput = "Inputs have to be positive numbers!"
	AlertNoMapClick   = "Click on the map to choose a location first"
	AlertSaveFailed   = "Could not save workouts"

	DefaultZoom = 13
	panDuration = time.Second
)

// Ports are the collaborators the controller drives. Every field is required.
type Ports struct {
	Locator  workoutout.Locator
	Maps     workoutout.MapLoader
	Store    workoutout.SnapshotStore
	Form     workoutout.FormView
	List     workoutout.ListView
	Alerter  workoutout.Alerter
	Reloader workoutout.Reloader
}

type Options struct {
	Zoom            int
	TileURL         string
	TileAttribution string
}

// Controller owns the workout list, the map handle and the transient form
// state. It is not safe for concurrent use: every method except the
// PositionRequest returned by Start must run on the UI event loop.
type Controller struct {
	svc    *service.WorkoutService
	ports  Ports
	opts   Options
	logger hclog.Logger

	mapWidget workoutout.MapWidget
	lastClick *dto.LatLng
	workouts  []domain.Workout
}

func NewController(svc *service.WorkoutService, ports Ports, opts Options, logger hclog.Logger) workoutin.Usecase {
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Controller{svc: svc, ports: ports, opts: opts, logger: logger.Named("controller")}
}

// Start restores the persisted list, renders it as list entries, wires the
// form and list handlers, and returns the position lookup for the caller to
// run asynchronously.
func (c *Controller) Start(ctx context.Context) dto.PositionRequest {
	c.restore(ctx)

	c.ports.Form.OnSubmit(func() { c.NewWorkout(ctx) })
	c.ports.Form.OnTypeChange(c.ToggleElevationField)
	c.ports.List.OnSelect(c.MoveToPopup)

	locator := c.ports.Locator
	return func(ctx context.Context) dto.PositionResult {
		pos, err := locator.CurrentPosition(ctx)
		return dto.PositionResult{Position: pos, Err: err}
	}
}

func (c *Controller) HandlePosition(_ context.Context, result dto.PositionResult) {
	if result.Err != nil {
		c.logger.Warn("position lookup failed", "error", result.Err)
		c.ports.Alerter.Alert(AlertNoLocation)
		return
	}
	if c.mapWidget != nil {
		return
	}
	m, err := c.ports.Maps.LoadMap(result.Position, c.opts.Zoom)
	if err != nil {
		c.logger.Warn("map load failed", "error", err)
		c.ports.Alerter.Alert(AlertNoLocation)
		return
	}
	m.AddTileLayer(c.opts.TileURL, c.opts.TileAttribution)
	m.OnClick(c.ShowForm)
	c.mapWidget = m
	c.logger.Debug("map loaded", "lat", result.Position.Lat, "lng", result.Position.Lng, "markers", len(c.workouts))

	for _, w := range c.workouts {
		c.renderMarker(w)
	}
}

func (c *Controller) ShowForm(at dto.LatLng) {
	click := at
	c.lastClick = &click
	c.ports.Form.Show()
	c.ports.Form.FocusDistance()
}

// NewWorkout handles a form submission. Invalid input raises one alert and
// leaves every piece of state untouched.
func (c *Controller) NewWorkout(ctx context.Context) {
	if c.lastClick == nil {
		c.ports.Alerter.Alert(AlertNoMapClick)
		return
	}
	input := service.ParseForm(c.ports.Form.Values(), *c.lastClick)
	if _, err := c.add(input); err != nil {
		c.logger.Debug("workout rejected", "error", err)
		c.ports.Alerter.Alert(AlertInvalidInput)
		return
	}
	c.ports.Form.Hide()
	if err := c.persist(ctx); err != nil {
		c.ports.Alerter.Alert(AlertSaveFailed)
	}
}

func (c *Controller) ToggleElevationField() {
	c.ports.Form.ToggleMetricRows()
}

func (c *Controller) MoveToPopup(id string) {
	if c.mapWidget == nil || id == "" {
		return
	}
	for _, w := range c.workouts {
		if w.ID() == id {
			c.mapWidget.PanTo(service.LatLng(w.Coords()), c.opts.Zoom, dto.PanOptions{Animate: true, Duration: panDuration})
			return
		}
	}
}

// Submit adds a workout without going through the form, for non-interactive
// callers. Validation is identical to NewWorkout.
func (c *Controller) Submit(ctx context.Context, input dto.SubmitInput) (dto.WorkoutOutput, error) {
	w, err := c.add(input)
	if err != nil {
		return dto.WorkoutOutput{}, err
	}
	if err := c.persist(ctx); err != nil {
		return service.Output(w), err
	}
	return service.Output(w), nil
}

func (c *Controller) Workouts() []dto.WorkoutOutput {
	out := make([]dto.WorkoutOutput, 0, len(c.workouts))
	for _, w := range c.workouts {
		out = append(out, service.Output(w))
	}
	return out
}

// Reset drops the persisted snapshot and reloads the application.
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.ports.Store.RemoveItem(ctx, service.SnapshotKey); err != nil {
		return fmt.Errorf("reset workouts: %w", err)
	}
	c.logger.Info("workouts reset")
	c.ports.Reloader.Reload()
	return nil
}

func (c *Controller) add(input dto.SubmitInput) (domain.Workout, error) {
	w, err := c.svc.Build(input)
	if err != nil {
		return domain.Workout{}, err
	}
	c.workouts = append(c.workouts, w)
	c.renderMarker(w)
	c.ports.List.InsertAfterForm(service.Entry(w))
	c.logger.Info("workout added", "id", w.ID(), "type", string(w.Kind()))
	return w, nil
}

func (c *Controller) renderMarker(w domain.Workout) {
	if c.mapWidget == nil {
		return
	}
	opts, content := service.Popup(w)
	c.mapWidget.AddMarker(service.LatLng(w.Coords()), opts, content)
}

func (c *Controller) persist(ctx context.Context) error {
	payload, err := service.EncodeSnapshot(c.workouts)
	if err != nil {
		c.logger.Error("encode workouts", "error", err)
		return err
	}
	if err := c.ports.Store.SetItem(ctx, service.SnapshotKey, payload); err != nil {
		c.logger.Error("save workouts", "error", err)
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

// restore replaces the in-memory list with the stored snapshot. Missing or
// malformed data is skipped without surfacing anything to the user.
func (c *Controller) restore(ctx context.Context) {
	payload, ok, err := c.ports.Store.GetItem(ctx, service.SnapshotKey)
	if err != nil {
		c.logger.Warn("read workouts", "error", err)
		return
	}
	if !ok {
		return
	}
	restored, skipped, err := service.DecodeSnapshot(payload)
	if err != nil {
		c.logger.Debug("ignoring malformed snapshot", "error", err)
		return
	}
	for _, e := range skipped {
		c.logger.Debug("skipping stored workout", "error", e)
	}
	if len(restored) == 0 {
		return
	}
	c.workouts = restored
	for _, w := range c.workouts {
		c.ports.List.InsertAfterForm(service.Entry(w))
	}
	c.logger.Debug("workouts restored", "count", len(restored))
}
