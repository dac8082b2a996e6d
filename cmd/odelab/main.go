package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/ode"
	"github.com/san-kum/odelab/internal/rk"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/viz"
)

var (
	dataDir    string
	form       string
	coeffA     float64
	coeffB     float64
	coeffC     float64
	x0         float64
	y0         float64
	target     float64
	stepSize   float64
	reference  float64
	configFile string
	preset     string
	verbose    bool
	repeats    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "runge-kutta estimation lab for scalar first-order ODEs",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve [order]",
		Short: "advance the trial solution with one method order",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addRunFlags(solveCmd)
	solveCmd.Flags().BoolVar(&verbose, "verbose", false, "print a line per step")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run all four orders on identical inputs",
		RunE:  runCompare,
	}
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time each order across step sizes",
		RunE:  benchOrders,
	}
	addRunFlags(benchCmd)
	benchCmd.Flags().IntVar(&repeats, "repeats", 1000, "invocations per measurement")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the four orders converge step by step",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, compareCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, benchCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&form, "form", "linear", "equation form (separable|linear)")
	cmd.Flags().Float64Var(&coeffA, "a", config.DefaultA, "coefficient a")
	cmd.Flags().Float64Var(&coeffB, "b", config.DefaultB, "coefficient b")
	cmd.Flags().Float64Var(&coeffC, "c", config.DefaultC, "coefficient c")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial x")
	cmd.Flags().Float64Var(&y0, "y0", config.DefaultY0, "initial y")
	cmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "target abscissa")
	cmd.Flags().Float64Var(&stepSize, "step", config.DefaultH, "step size h")
	cmd.Flags().Float64Var(&reference, "reference", math.NaN(), "reference y at target for error reporting")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("form") {
		cfg.Form = form
	}
	if cmd.Flags().Changed("a") {
		cfg.A = coeffA
	}
	if cmd.Flags().Changed("b") {
		cfg.B = coeffB
	}
	if cmd.Flags().Changed("c") {
		cfg.C = coeffC
	}
	if cmd.Flags().Changed("x0") {
		cfg.X0 = x0
	}
	if cmd.Flags().Changed("y0") {
		cfg.Y0 = y0
	}
	if cmd.Flags().Changed("target") {
		cfg.Target = target
	}
	if cmd.Flags().Changed("step") {
		cfg.H = stepSize
	}
	if cmd.Flags().Changed("reference") {
		cfg.Reference = reference
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// consoleSink prints one line per completed step.
type consoleSink struct {
	order rk.Order
}

func (c *consoleSink) OnStep(step int, p ode.Point) {
	fmt.Printf("%s step %3d  x=%.4f  y=%.6f\n", c.order, step, p.X, p.Y)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	stepper, err := registry.GetStepper(args[0])
	if err != nil {
		return err
	}
	eq, err := registry.GetEquation(cfg.Form, cfg.A, cfg.B, cfg.C)
	if err != nil {
		return err
	}

	if verbose {
		stepper.AddObserver(&consoleSink{order: stepper.Order()})
	}

	exp := experiment.New(experiment.Config{
		Form: cfg.Form, A: cfg.A, B: cfg.B, C: cfg.C,
		Order:     stepper.Order().String(),
		Initial:   cfg.Initial(),
		H:         cfg.H,
		Target:    cfg.Target,
		Reference: cfg.Reference,
	})
	if err := exp.Setup(eq, stepper, registry.DefaultMetrics(cfg.Reference)); err != nil {
		return err
	}

	run, runErr := exp.Run()
	if runErr != nil {
		var stepErr *rk.StepError
		if errors.As(runErr, &stepErr) {
			fmt.Printf("%s failed at step %d: %v\n", stepErr.Order, stepErr.Step, stepErr.Wrapped)
		}
		return runErr
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := metaFromConfig(cfg)
	meta.Metrics = run.Metrics
	runID, err := st.Save(meta, []*rk.Result{run.Result})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", run.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final: x=%.6f  y=%.6f  (%d steps)\n", run.Final.X, run.Final.Y, run.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range run.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	eq, err := registry.GetEquation(cfg.Form, cfg.A, cfg.B, cfg.C)
	if err != nil {
		return err
	}

	fmt.Printf("comparing orders (h=%.4f, target=%.4f)\n\n", cfg.H, cfg.Target)

	start := time.Now()
	results, runErr := rk.CompareAll(eq, cfg.Initial(), cfg.H, cfg.Target)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSTEPS\tFINAL_Y\tABS_ERROR")
	for _, r := range results {
		if r == nil {
			continue
		}
		errStr := "-"
		if !math.IsNaN(cfg.Reference) {
			errStr = fmt.Sprintf("%.6f", ode.AbsError(r.Final, ode.Point{X: cfg.Target, Y: cfg.Reference}))
		}
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%s\n", r.Order, r.Steps, r.Final.Y, errStr)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if runErr != nil {
		fmt.Printf("\nfailures: %v\n", runErr)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(metaFromConfig(cfg), results)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)

	return nil
}

func metaFromConfig(cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Form: cfg.Form, A: cfg.A, B: cfg.B, C: cfg.C,
		X0: cfg.X0, Y0: cfg.Y0, Target: cfg.Target, H: cfg.H,
	}
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
	fmt.Fprintln(w, "ID\tTIME\tFORM\tH\tTARGET\tORDERS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Form,
			run.H,
			run.Target,
			run.Orders,
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

	xs, series, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("form: %s  h=%.4f  target=%.4f\n", meta.Form, meta.H, meta.Target)
	fmt.Printf("samples: %d\n\n", len(xs))

	if len(series) == 1 {
		fmt.Println(viz.PlotSeries(series[0].Name, series[0].Ys))
		return nil
	}

	names := make([]string, len(series))
	data := make([][]float64, len(series))
	for i, s := range series {
		names[i] = s.Name
		data[i] = s.Ys
	}
	fmt.Println(viz.PlotMany(names, data, "y(x) per order"))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	xs, series, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, xs, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	xs, series, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportCSV(os.Stdout, xs, series)
}

func benchOrders(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	eq, err := registry.GetEquation(cfg.Form, cfg.A, cfg.B, cfg.C)
	if err != nil {
		return err
	}

	steps := []float64{0.5, 0.1, 0.01}

	fmt.Printf("timing %d invocations per cell\n\n", repeats)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tH\tSTEPS\tTOTAL\tPER_RUN")

	for _, order := range rk.Orders {
		for _, h := range steps {
			exp := experiment.New(experiment.Config{
				Order:   order.String(),
				Initial: cfg.Initial(),
				H:       h,
				Target:  cfg.Target,
			})
			if err := exp.Setup(eq, nil, nil); err != nil {
				return err
			}

			elapsed, err := exp.Time(repeats)
			if err != nil {
				fmt.Fprintf(w, "%s\t%.4f\terror: %v\n", order, h, err)
				continue
			}

			n := rk.StepCount(cfg.Initial(), h, cfg.Target)
			fmt.Fprintf(w, "%s\t%.4f\t%d\t%v\t%v\n",
				order, h, n, elapsed, elapsed/time.Duration(repeats))
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	eq, err := registry.GetEquation(cfg.Form, cfg.A, cfg.B, cfg.C)
	if err != nil {
		return err
	}

	hasRef := !math.IsNaN(cfg.Reference)
	m, err := viz.NewModel(eq, cfg.Initial(), cfg.H, cfg.Target, cfg.Reference, hasRef)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
