package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mapty/internal/bootstrap"
	"mapty/internal/modules/workout/dto"
	"mapty/internal/platform/config"
	"mapty/internal/platform/logging"
	"mapty/internal/platform/markdown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "mapty",
		Short:         "Log running and cycling workouts on a map",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dataDir)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "directory holding config, storage and logs")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newAddCmd(&dataDir))
	root.AddCommand(newListCmd(&dataDir))
	root.AddCommand(newShowCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mapty"
	}
	return filepath.Join(home, ".mapty")
}

// loadApp wires the application with a logger on stderr. The caller must
// Close the app.
func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(context.Background(), cfg, logging.New(os.Stderr, cfg.LogLevel))
}

func runTUI(dataDir string) error {
	cfg, err := config.New(dataDir)
	if err != nil {
		return err
	}
	logger, closer, err := logging.NewFile(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	logger.Info("starting tui", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	return app.RunTUI()
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive map",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*dataDir)
		},
	}
}

func newAddCmd(dataDir *string) *cobra.Command {
	add := &cobra.Command{Use: "add", Short: "Record a workout"}

	var lat, lng, distance, duration, cadence, elevation float64
	bindCommon := func(c *cobra.Command) {
		c.Flags().Float64Var(&lat, "lat", 0, "latitude")
		c.Flags().Float64Var(&lng, "lng", 0, "longitude")
		c.Flags().Float64Var(&distance, "distance", 0, "distance in km")
		c.Flags().Float64Var(&duration, "duration", 0, "duration in minutes")
		_ = c.MarkFlagRequired("lat")
		_ = c.MarkFlagRequired("lng")
		_ = c.MarkFlagRequired("distance")
		_ = c.MarkFlagRequired("duration")
	}

	running := &cobra.Command{
		Use:   "running",
		Short: "Record a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.WorkoutCLI.AddRunning(context.Background(), dto.LatLng{Lat: lat, Lng: lng}, distance, duration, cadence)
			if err != nil {
				return err
			}
			printWorkout(cmd.OutOrStdout(), out)
			return nil
		},
	}
	bindCommon(running)
	running.Flags().Float64Var(&cadence, "cadence", 0, "cadence in steps per minute")
	_ = running.MarkFlagRequired("cadence")

	cycling := &cobra.Command{
		Use:   "cycling",
		Short: "Record a ride",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.WorkoutCLI.AddCycling(context.Background(), dto.LatLng{Lat: lat, Lng: lng}, distance, duration, elevation)
			if err != nil {
				return err
			}
			printWorkout(cmd.OutOrStdout(), out)
			return nil
		},
	}
	bindCommon(cycling)
	cycling.Flags().Float64Var(&elevation, "elevation", 0, "elevation gain in meters")
	_ = cycling.MarkFlagRequired("elevation")

	add.AddCommand(running, cycling)
	return add
}

func newListCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			list := app.WorkoutCLI.List()
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no workouts")
				return nil
			}
			for _, w := range list {
				printWorkout(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}

func newShowCmd(dataDir *string) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one workout as a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			card, err := app.JournalCLI.Show(context.Background(), args[0])
			if err != nil {
				return err
			}
			if raw {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), card.Markdown)
				return nil
			}
			rendered, err := markdown.Terminal(card.Markdown, 80)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func newExportCmd(dataDir *string) *cobra.Command {
	export := &cobra.Command{Use: "export", Short: "Export workouts"}

	export.AddCommand(&cobra.Command{
		Use:   "gpx <file>",
		Short: "Write every workout as a GPX waypoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.JournalCLI.ExportGPX(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d waypoints to %s\n", out.Count, args[0])
			return nil
		},
	})

	export.AddCommand(&cobra.Command{
		Use:   "notes <dir>",
		Short: "Write one markdown note per workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.JournalCLI.ExportNotes(context.Background(), args[0])
			for _, p := range out.Paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes\n", out.Count)
			return nil
		},
	})
	return export
}

func newResetCmd(dataDir *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored workout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all workouts; rerun with --yes to confirm")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.WorkoutCLI.Reset(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "workouts deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func printWorkout(w io.Writer, out dto.WorkoutOutput) {
	metric := fmt.Sprintf("%.1f min/km  %g spm", out.Pace, out.Cadence)
	if out.Type == "cycling" {
		metric = fmt.Sprintf("%.1f km/h  %g m", out.Speed, out.ElevationGain)
	}
	_, _ = fmt.Fprintf(w, "%s  %s %s  %g km  %g min  %s  (%.4f, %.4f)\n",
		out.ID, out.Icon, strings.TrimSpace(out.Description), out.Distance, out.Duration, metric, out.Lat, out.Lng)
}
