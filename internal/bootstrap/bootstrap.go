package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	journalinadapter "mapty/internal/modules/journal/adapter/in"
	journaloutadapter "mapty/internal/modules/journal/adapter/out"
	journalservice "mapty/internal/modules/journal/service"
	journalusecase "mapty/internal/modules/journal/usecase"
	workoutinadapter "mapty/internal/modules/workout/adapter/in"
	workoutoutadapter "mapty/internal/modules/workout/adapter/out"
	"mapty/internal/modules/workout/dto"
	workoutin "mapty/internal/modules/workout/port/in"
	workoutout "mapty/internal/modules/workout/port/out"
	workoutservice "mapty/internal/modules/workout/service"
	workoutusecase "mapty/internal/modules/workout/usecase"
	"mapty/internal/platform/clock"
	"mapty/internal/platform/config"
	"mapty/internal/platform/id"
	uiapp "mapty/internal/ui/app"
	"mapty/internal/ui/views/form"
	"mapty/internal/ui/views/mapview"
	"mapty/internal/ui/views/workouts"
)

type App struct {
	WorkoutCLI workoutinadapter.CLIHandler
	JournalCLI journalinadapter.CLIHandler

	cfg     config.Config
	logger  hclog.Logger
	store   workoutout.SnapshotStore
	svc     *workoutservice.WorkoutService
	locator workoutout.Locator
}

// New wires the application for cfg. The command-line handlers drive a
// headless controller that has already restored the stored workouts.
func New(ctx context.Context, cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	store, err := NewSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage ready", "backend", cfg.Storage)

	clk := clock.SystemClock{}
	app := &App{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		svc:     workoutservice.NewWorkoutService(clk, id.NewTimestamp(clk)),
		locator: workoutoutadapter.NewStaticLocator(home(cfg)),
	}

	headless := app.controller(workoutoutadapter.HeadlessMap{},
		workoutoutadapter.HeadlessForm{},
		workoutoutadapter.HeadlessList{},
		workoutoutadapter.NewLogAlerter(logger),
		workoutoutadapter.NoopReloader{},
	)
	// Only the restore matters here; the position lookup feeds a map that
	// nothing draws.
	_ = headless.Start(ctx)

	journalUC := journalusecase.NewInteractor(journalservice.NewJournalService(
		journaloutadapter.NewWorkoutSourceAdapter(headless),
		journaloutadapter.NewGPXWriter(),
		journaloutadapter.NewVaultNoteStore(),
	))

	app.WorkoutCLI = workoutinadapter.NewCLIHandler(headless)
	app.JournalCLI = journalinadapter.NewCLIHandler(journalUC)
	return app, nil
}

// NewSnapshotStore opens the storage backend named by cfg.Storage.
func NewSnapshotStore(ctx context.Context, cfg config.Config, logger hclog.Logger) (workoutout.SnapshotStore, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := workoutoutadapter.NewSQLiteSnapshotStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		return store, nil
	case config.StorageFile:
		return workoutoutadapter.NewFileSnapshotStore(cfg.StorePath, logger.Named("storage")), nil
	case config.StorageRedis:
		store, err := workoutoutadapter.NewRedisSnapshotStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("new redis store: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
}

func (a *App) Close() error {
	return a.store.Close()
}

// RunTUI runs the interactive application until the user quits.
func (a *App) RunTUI() error {
	factory := func(alerter workoutout.Alerter, reloader workoutout.Reloader) (uiapp.Workbench, error) {
		wb := uiapp.Workbench{Canvas: mapview.New(), Form: form.New(), List: workouts.New()}
		wb.Controller = a.controller(wb.Canvas, wb.Form, wb.List, alerter, reloader)
		return wb, nil
	}
	model, err := uiapp.NewModel(factory)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (a *App) controller(maps workoutout.MapLoader, f workoutout.FormView, l workoutout.ListView, alerter workoutout.Alerter, reloader workoutout.Reloader) workoutin.Usecase {
	return workoutusecase.NewController(a.svc, workoutusecase.Ports{
		Locator:  a.locator,
		Maps:     maps,
		Store:    a.store,
		Form:     f,
		List:     l,
		Alerter:  alerter,
		Reloader: reloader,
	}, workoutusecase.Options{
		Zoom:            a.cfg.MapZoom,
		TileURL:         a.cfg.TileURL,
		TileAttribution: a.cfg.TileAttribution,
	}, a.logger)
}

func home(cfg config.Config) *dto.LatLng {
	if cfg.Home == nil {
		return nil
	}
	return &dto.LatLng{Lat: cfg.Home.Lat, Lng: cfg.Home.Lng}
}
