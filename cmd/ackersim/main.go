package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emirelesg/ackersim/internal/config"
	"github.com/emirelesg/ackersim/internal/sim"
	"github.com/emirelesg/ackersim/internal/storage"
	"github.com/emirelesg/ackersim/internal/vehicle"
	"github.com/emirelesg/ackersim/internal/viz"
	"github.com/guptarohit/asciigraph"
)

var (
	dataDir    string
	configFile string
	preset     string
	label      string
	dt         float64
	duration   float64
	speed      float64
	steerDeg   float64
	wheelbase  float64
	trackWidth float64
	reference  string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ackersim",
		Short: "interactive Ackermann steering simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command is given.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ackersim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a named vehicle preset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive the vehicle interactively",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (0 = config value)")
	addVehicleFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run with fixed inputs, saved to the store",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = config value)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (0 = config value)")
	runCmd.Flags().Float64Var(&speed, "speed", math.NaN(), "constant forward speed")
	runCmd.Flags().Float64Var(&steerDeg, "steer", 0, "constant steering angle in degrees")
	runCmd.Flags().StringVar(&label, "label", "run", "label for the stored run")
	addVehicleFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run channels against time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	pathCmd := &cobra.Command{
		Use:   "path [run_id]",
		Short: "draw the driven x/y path",
		Args:  cobra.ExactArgs(1),
		RunE:  plotPath,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run path to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available vehicle presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s wheelbase %.1fm, track %.1fm, %s\n",
					name, cfg.Vehicle.Wheelbase, cfg.Vehicle.TrackWidth, cfg.Reference)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, pathCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addVehicleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&wheelbase, "wheelbase", 0, "wheelbase in meters (0 = config value)")
	cmd.Flags().Float64Var(&trackWidth, "track", 0, "track width in meters (0 = config value)")
	cmd.Flags().StringVar(&reference, "reference", "", "kinematic reference: rear_axle or center_mass")
}

// loadConfig resolves preset, config file, and flag overrides, in that
// order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("wheelbase") {
		cfg.Vehicle.Wheelbase = wheelbase
	}
	if cmd.Flags().Changed("track") {
		cfg.Vehicle.TrackWidth = trackWidth
	}
	if cmd.Flags().Changed("reference") {
		cfg.Reference = reference
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("fps") && frameRate > 0 {
		cfg.FPS = frameRate
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed.Initial = speed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	geo, err := cfg.GetGeometry()
	if err != nil {
		return err
	}

	controls := vehicle.NewControls(cfg.GetLimits())
	model := vehicle.NewKinematic(geo, controls, cfg.GetReference())
	ctrl := sim.NewController(model, sim.Options{
		SteerStep:    cfg.SteerStep(),
		SpeedStep:    cfg.Speed.Step,
		InitialSpeed: cfg.Speed.Initial,
		Centering:    cfg.CenteringRate(),
	})
	controls.SetSteer(steerDeg * math.Pi / 180)

	fmt.Printf("running %s (%.1fs at dt=%.3fs)...\n", label, cfg.Duration, cfg.Dt)
	start := time.Now()

	trace, err := ctrl.Run(context.Background(), cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	runID, err := st.Save(label, geo, cfg.GetReference(), cfg.Dt, cfg.Duration, trace)
	if err != nil {
		return err
	}

	final := trace.Final()
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", trace.Len())
	fmt.Printf("final pose: (%.3f, %.3f) heading %.3f rad\n", final.X, final.Y, final.Heading)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tREFERENCE\tWHEELBASE\tDURATION\tDT\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fm\t%.2fs\t%.3fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Reference,
			run.Wheelbase,
			run.Duration,
			run.Dt,
			run.Samples,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadPath(runID)
	if err != nil {
		return err
	}

	if trace.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("reference: %s\n", meta.Reference)
	fmt.Printf("samples: %d\n\n", trace.Len())

	channels := []struct {
		name string
		data func(i int) float64
	}{
		{"x position [m]", func(i int) float64 { return trace.Poses[i].X }},
		{"y position [m]", func(i int) float64 { return trace.Poses[i].Y }},
		{"heading [rad]", func(i int) float64 { return trace.Poses[i].Heading }},
		{"steering [rad]", func(i int) float64 { return trace.Steer[i] }},
		{"speed [m/s]", func(i int) float64 { return trace.Speed[i] }},
	}

	for _, ch := range channels {
		data := make([]float64, trace.Len())
		for i := range data {
			data[i] = ch.data(i)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(ch.name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func plotPath(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadPath(runID)
	if err != nil {
		return err
	}

	if trace.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("path: %s (%s)\n\n", meta.ID, meta.Reference)

	xMin, xMax := trace.Poses[0].X, trace.Poses[0].X
	yMin, yMax := trace.Poses[0].Y, trace.Poses[0].Y
	for _, p := range trace.Poses {
		xMin, xMax = math.Min(xMin, p.X), math.Max(xMax, p.X)
		yMin, yMax = math.Min(yMin, p.Y), math.Max(yMax, p.Y)
	}

	xRange, yRange := xMax-xMin, yMax-yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width, height := 70, 20
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	n := trace.Len()
	for i, p := range trace.Poses {
		px := int(float64(width-1) * (p.X - xMin) / xRange)
		py := height - 1 - int(float64(height-1)*(p.Y-yMin)/yRange)
		if px < 0 || px >= width || py < 0 || py >= height {
			continue
		}
		switch {
		case i < n/3:
			grid[py][px] = '.'
		case i < 2*n/3:
			grid[py][px] = 'o'
		default:
			grid[py][px] = '●'
		}
	}

	fmt.Printf("  %7.2f ┌%s┐\n", yMax, strings.Repeat("─", width))
	for i, row := range grid {
		if i == height/2 {
			fmt.Printf("  %7.2f │%s│\n", (yMax+yMin)/2, string(row))
		} else {
			fmt.Printf("          │%s│\n", string(row))
		}
	}
	fmt.Printf("  %7.2f └%s┘\n", yMin, strings.Repeat("─", width))
	fmt.Printf("          %.2f%s%.2f\n", xMin, strings.Repeat(" ", width-16), xMax)
	fmt.Println("\nlegend: . = early, o = middle, ● = late")

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	return storage.WritePathCSV(os.Stdout, trace)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, trace)
}
