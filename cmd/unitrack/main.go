package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/edaniels/golog"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/unitrack/internal/analysis"
	"github.com/san-kum/unitrack/internal/config"
	"github.com/san-kum/unitrack/internal/export"
	"github.com/san-kum/unitrack/internal/integrators"
	"github.com/san-kum/unitrack/internal/lyapunov"
	"github.com/san-kum/unitrack/internal/metrics"
	"github.com/san-kum/unitrack/internal/rover"
	"github.com/san-kum/unitrack/internal/store"
	"github.com/san-kum/unitrack/internal/tracking"
	"github.com/san-kum/unitrack/internal/tui"
	"github.com/san-kum/unitrack/internal/tune"
	"github.com/san-kum/unitrack/internal/unicycle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir     string
	configFile  string
	preset      string
	runName     string
	dt          float64
	duration    float64
	kp          float64
	ktheta      float64
	integrator  string
	planName    string
	vMax        float64
	omegaMax    float64
	startX      float64
	startY      float64
	startTheta  float64
	offsetX     float64
	offsetY     float64
	offsetTheta float64
	maxTime     float64
	noSave      bool
	// Plot outputs
	pathPNG  string
	errorPNG string
	svgOut   string
	// Gain grid bounds
	kpMin       float64
	kpMax       float64
	kpSteps     int
	kthetaMin   float64
	kthetaMax   float64
	kthetaSteps int
	tuneMetric  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "unitrack",
		Short: "lyapunov trajectory tracking for unicycle robots",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".unitrack", "data directory")

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "run a tracking session",
		RunE:  runTrack,
	}
	addSetupFlags(trackCmd)
	trackCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to plan type)")
	trackCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a tracking session with live visualization",
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pathPNG, "path-png", "", "write reference vs driven path plot to file")
	plotCmd.Flags().StringVar(&errorPNG, "error-png", "", "write tracking error plot to file")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "write driven path SVG to file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "stability analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search over controller gains",
		RunE:  runTune,
	}
	addSetupFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&kpMin, "kp-min", 1.0, "lower kp bound")
	tuneCmd.Flags().Float64Var(&kpMax, "kp-max", 20.0, "upper kp bound")
	tuneCmd.Flags().IntVar(&kpSteps, "kp-steps", 5, "kp grid points")
	tuneCmd.Flags().Float64Var(&kthetaMin, "ktheta-min", 0.5, "lower ktheta bound")
	tuneCmd.Flags().Float64Var(&kthetaMax, "ktheta-max", 4.0, "upper ktheta bound")
	tuneCmd.Flags().IntVar(&kthetaSteps, "ktheta-steps", 5, "ktheta grid points")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "cross_track_rms", "metric to minimize")

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "describe the configured controller and trajectory",
		RunE:  describeSetup,
	}
	addSetupFlags(describeCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or show one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(trackCmd, liveCmd, listCmd, plotCmd, analyzeCmd, tuneCmd, describeCmd, presetsCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "control timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "plan duration")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "position gain")
	cmd.Flags().Float64Var(&ktheta, "ktheta", config.DefaultKTheta, "heading gain")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4)")
	cmd.Flags().StringVar(&planName, "plan", "chicane", "command plan (straight, arc, chicane, dubins)")
	cmd.Flags().Float64Var(&vMax, "v", config.DefaultVMax, "plan linear velocity")
	cmd.Flags().Float64Var(&omegaMax, "omega", config.DefaultOmegaMax, "plan turn rate")
	cmd.Flags().Float64Var(&startX, "start-x", 0, "plant start x")
	cmd.Flags().Float64Var(&startY, "start-y", 0, "plant start y")
	cmd.Flags().Float64Var(&startTheta, "start-theta", 0, "plant start heading")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "reference frame x offset")
	cmd.Flags().Float64Var(&offsetY, "offset-y", 0, "reference frame y offset")
	cmd.Flags().Float64Var(&offsetTheta, "offset-theta", 0, "reference frame rotation")
	cmd.Flags().Float64Var(&maxTime, "max-time", 0, "session time limit (0 = trajectory end)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration: defaults, then
// preset, then config file, with explicitly set flags overriding all.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Plan.Duration = duration
	}
	if flags.Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if flags.Changed("ktheta") {
		cfg.Gains.KTheta = ktheta
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("plan") {
		cfg.Plan.Type = planName
	}
	if flags.Changed("v") {
		cfg.Plan.V = vMax
	}
	if flags.Changed("omega") {
		cfg.Plan.Omega = omegaMax
	}
	if flags.Changed("start-x") {
		cfg.Start.X = startX
	}
	if flags.Changed("start-y") {
		cfg.Start.Y = startY
	}
	if flags.Changed("start-theta") {
		cfg.Start.Theta = startTheta
	}
	if flags.Changed("offset-x") {
		cfg.Offset.X = offsetX
	}
	if flags.Changed("offset-y") {
		cfg.Offset.Y = offsetY
	}
	if flags.Changed("offset-theta") {
		cfg.Offset.Theta = offsetTheta
	}
	if flags.Changed("max-time") {
		cfg.Session.MaxTime = maxTime
	}

	return cfg, nil
}

// buildLoop assembles the closed loop: plant, controller and the
// command plan, with the reference trajectory already loaded.
func buildLoop(cfg *config.Config) (*unicycle.Model, *lyapunov.Controller, []rover.Command, error) {
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, nil, nil, err
	}

	plant, err := unicycle.NewModel(cfg.Dt, integ)
	if err != nil {
		return nil, nil, nil, err
	}

	ctrl, err := lyapunov.New(cfg.Gains.Kp, cfg.Gains.KTheta, cfg.Dt)
	if err != nil {
		return nil, nil, nil, err
	}

	cmds, err := cfg.BuildPlan()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := ctrl.LoadSimulated(cmds, cfg.Offset.Pose()); err != nil {
		return nil, nil, nil, err
	}

	return plant, ctrl, cmds, nil
}

func sessionMetrics(cfg *config.Config) []rover.Metric {
	return []rover.Metric{
		metrics.NewCrossTrack(),
		metrics.NewCrossTrackP95(),
		metrics.NewHeadingPeak(),
		metrics.NewControlEffort(),
		metrics.NewSettlingTime(cfg.Session.SettleThreshold),
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	plant, ctrl, cmds, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	sess := tracking.New(plant, ctrl, golog.NewDevelopmentLogger("track"))
	for _, m := range sessionMetrics(cfg) {
		sess.AddMetric(m)
	}

	fmt.Printf("tracking %s plan (%d samples, dt=%.4fs)...\n", cfg.Plan.Type, len(cmds), cfg.Dt)
	start := time.Now()

	result, err := sess.Run(context.Background(), tracking.Config{
		Start:        cfg.Start.Pose(),
		MaxTime:      cfg.Session.MaxTime,
		ValidatePose: cfg.Session.ValidatePose,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)

	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		name := runName
		if name == "" {
			name = cfg.Plan.Type
		}
		runID, err := st.Save(name, cfg.Dt, cfg.Gains.Kp, cfg.Gains.KTheta, cfg.Integrator, cfg.Plan.Type, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	candidate := analysis.CandidateTrace(result.Errors)
	if ok, at := analysis.NonIncreasing(candidate, 1e-9); ok {
		fmt.Println("\nlyapunov candidate: non-increasing")
	} else {
		fmt.Printf("\nlyapunov candidate: rises at step %d\n", at)
	}

	dists := make([]float64, len(result.Errors))
	for i, e := range result.Errors {
		dists[i] = e.Distance()
	}
	if rate := analysis.ConvergenceRate(result.Times, dists); rate > 0 {
		fmt.Printf("convergence rate: %.3f 1/s\n", rate)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	plant, ctrl, cmds, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	m, err := tui.NewModel(plant, ctrl, cmds, cfg.Offset.Pose(), cfg.Start.Pose())
	if err != nil {
		return err
	}
	return tui.Run(m)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAN\tTIME\tDT\tKP\tKTHETA\tINTEG\tDONE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%.1f\t%.1f\t%s\t%v\n",
			run.ID,
			run.Plan,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Kp,
			run.KTheta,
			run.Integrator,
			run.Completed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("plan: %s\n", meta.Plan)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	dists := make([]float64, len(series.Errors))
	headings := make([]float64, len(series.Errors))
	for i, e := range series.Errors {
		dists[i] = e.Distance()
		headings[i] = e.Heading
	}

	graph := asciigraph.Plot(dists,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("cross-track error e_xy [m]"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(headings,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("heading error e_theta [rad]"),
	)
	fmt.Println(graph)
	fmt.Println()

	if pathPNG != "" {
		if err := export.PathPlot(pathPNG, referencePath(series), series.Poses); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pathPNG)
	}
	if errorPNG != "" {
		if err := export.ErrorPlot(errorPNG, series.Times, series.Errors); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", errorPNG)
	}
	if svgOut != "" {
		svg := export.PathSVG(series.Poses, 800, 600, "#2f81f7")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}

	return nil
}

// referencePath reconstructs the reference poses from the driven poses
// and the recorded tracking errors.
func referencePath(series *store.Series) []rover.Pose {
	ref := make([]rover.Pose, len(series.Poses))
	for i, p := range series.Poses {
		e := series.Errors[i]
		ref[i] = rover.Pose{X: p.X - e.X, Y: p.Y - e.Y, Theta: p.Theta - e.Heading}
	}
	return ref
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Errors) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("stability analysis: %s\n", meta.ID)
	fmt.Printf("plan: %s\n\n", meta.Plan)

	candidate := analysis.CandidateTrace(series.Errors)

	graph := asciigraph.Plot(candidate,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("lyapunov candidate V"),
	)
	fmt.Println(graph)
	fmt.Println()

	if ok, at := analysis.NonIncreasing(candidate, 1e-9); ok {
		fmt.Println("candidate is non-increasing along the run")
	} else {
		fmt.Printf("candidate rises at step %d (t=%.3fs)\n", at, series.Times[at])
	}

	dists := make([]float64, len(series.Errors))
	lateral := make([]float64, len(series.Errors))
	for i, e := range series.Errors {
		dists[i] = e.Distance()
		lateral[i] = e.Y
	}

	if rate := analysis.ConvergenceRate(series.Times, dists); rate > 0 {
		fmt.Printf("convergence rate: %.3f 1/s\n", rate)
	}
	if period := analysis.DominantPeriod(lateral, meta.Dt); period > 0 {
		fmt.Printf("dominant error period: %.3f s\n", period)
	}

	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	cmds, err := cfg.BuildPlan()
	if err != nil {
		return err
	}

	logger := golog.NewDevelopmentLogger("tune")

	runner := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		integ, err := integrators.ByName(cfg.Integrator)
		if err != nil {
			return nil, err
		}
		plant, err := unicycle.NewModel(cfg.Dt, integ)
		if err != nil {
			return nil, err
		}
		ctrl, err := lyapunov.New(params["kp"], params["ktheta"], cfg.Dt)
		if err != nil {
			return nil, err
		}
		if err := ctrl.LoadSimulated(cmds, cfg.Offset.Pose()); err != nil {
			return nil, err
		}

		sess := tracking.New(plant, ctrl, logger)
		for _, m := range sessionMetrics(cfg) {
			sess.AddMetric(m)
		}

		result, err := sess.Run(ctx, tracking.Config{
			Start:        cfg.Start.Pose(),
			MaxTime:      cfg.Session.MaxTime,
			ValidatePose: cfg.Session.ValidatePose,
		})
		if err != nil {
			return nil, err
		}
		return result.Metrics, nil
	}

	gs := tune.NewGridSearch(
		[]string{"kp", "ktheta"},
		[][]float64{
			tune.Range(kpMin, kpMax, kpSteps),
			tune.Range(kthetaMin, kthetaMax, kthetaSteps),
		},
	)

	fmt.Printf("searching %dx%d gain grid on %s plan...\n", kpSteps, kthetaSteps, cfg.Plan.Type)
	start := time.Now()

	best, val, err := gs.Search(context.Background(), runner, tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("done in %v\n\n", time.Since(start))
	fmt.Printf("best %s: %.6f\n", tuneMetric, val)
	fmt.Printf("  kp: %.3f\n", best["kp"])
	fmt.Printf("  ktheta: %.3f\n", best["ktheta"])

	return nil
}

func describeSetup(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	_, ctrl, _, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	fmt.Print(ctrl.DescribeSetup())
	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("available presets:")
		for _, name := range config.ListPresets() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}

	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, meta, series)
}
