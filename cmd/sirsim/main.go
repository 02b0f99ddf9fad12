package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/sirsim/internal/analysis"
	"github.com/san-kum/sirsim/internal/anim"
	"github.com/san-kum/sirsim/internal/config"
	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/logging"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/prompt"
	"github.com/san-kum/sirsim/internal/render"
	"github.com/san-kum/sirsim/internal/sim"
	"github.com/san-kum/sirsim/internal/viz"
)

var (
	logLevel   string
	configFile string
	preset     string
	rateB      float64
	rateK      float64
	integrator string
	tolerance  float64
	output     string
	frameRate  int
	asJSON     bool
	plotWidth  int
	plotHeight int
)

var log = logging.For("cli")

// main registers the commands and runs the root command. Without a
// subcommand it prompts for the rates and writes the animation.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sirsim",
		Short:         "SIR epidemic simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(logLevel, os.Stderr)
		},
		RunE: runAnimation,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace debug info warn error off)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate and write the animation",
		Args:  cobra.NoArgs,
		RunE:  runAnimation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&output, "output", config.DefaultOutput, "output file (.gif or .avi)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the epidemic in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot s, r and i in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	addModelFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "print epidemic indicators",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}
	addModelFlags(summaryCmd)
	summaryCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "susceptible vs infected phase portrait",
		Args:  cobra.NoArgs,
		RunE:  runPhase,
	}
	addModelFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&plotWidth, "width", 60, "portrait width")
	phaseCmd.Flags().IntVar(&plotHeight, "height", 20, "portrait height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list rate presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, summaryCmd, phaseCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rateB, "b", 0, "infection rate in [0, 1]")
	cmd.Flags().Float64Var(&rateK, "k", 0, "recovery rate in [0, 1]")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named (b, k) preset")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "relative tolerance of the adaptive integrator")
}

// loadConfig merges defaults, preset, config file and flags, in increasing
// precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		r, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if cfg.InfectionRate == nil {
			cfg.InfectionRate = &r.B
		}
		if cfg.RecoveryRate == nil {
			cfg.RecoveryRate = &r.K
		}
	}

	flags := cmd.Flags()
	if flags.Changed("b") {
		cfg.InfectionRate = &rateB
	}
	if flags.Changed("k") {
		cfg.RecoveryRate = &rateK
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("output") {
		cfg.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveParams prompts on the console for any rate the configuration
// leaves unset.
func resolveParams(cfg *config.Config, in io.Reader, out io.Writer) (models.Params, error) {
	if !cfg.HasRates() {
		p := prompt.New(in, out)
		if cfg.InfectionRate == nil {
			b, err := p.ReadRate(prompt.InfectionRateLabel)
			if err != nil {
				return models.Params{}, err
			}
			cfg.InfectionRate = &b
		}
		if cfg.RecoveryRate == nil {
			k, err := p.ReadRate(prompt.RecoveryRateLabel)
			if err != nil {
				return models.Params{}, err
			}
			cfg.RecoveryRate = &k
		}
	}

	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return models.Params{}, err
	}
	return params, nil
}

func integrate(ctx context.Context, cfg *config.Config, params models.Params) (*sim.Trajectory, error) {
	integ, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	grid, err := cfg.TimeGrid()
	if err != nil {
		return nil, err
	}

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = cfg.InitialStep
	simCfg.Tolerance = cfg.Tolerance

	sir := models.NewSIR(params)
	s := sim.New(sir, integ, simCfg)
	s.AddMetric(metrics.NewMassDrift(sir))
	s.AddMetric(metrics.NewPeakInfected())
	s.AddMetric(metrics.NewFinalSusceptible())

	population := cfg.PopulationSize()
	log.WithFields(logrus.Fields{
		"b":          params.B,
		"k":          params.K,
		"population": population,
		"points":     grid.Len(),
		"integrator": cfg.Integrator,
	}).Info("integrating")

	start := time.Now()
	traj, err := s.Run(ctx, models.InitialCondition(population), grid)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"steps":      traj.Steps,
		"rejected":   traj.Rejected,
		"mass_drift": traj.Metrics["mass_drift"],
		"elapsed":    time.Since(start),
	}).Info("integration done")

	return traj, nil
}

func prepare(cmd *cobra.Command) (*config.Config, models.Params, *sim.Trajectory, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, models.Params{}, nil, err
	}
	params, err := resolveParams(cfg, os.Stdin, os.Stdout)
	if err != nil {
		return nil, models.Params{}, nil, err
	}
	traj, err := integrate(cmd.Context(), cfg, params)
	if err != nil {
		return nil, models.Params{}, nil, err
	}
	return cfg, params, traj, nil
}

func frameStyle(cfg *config.Config) render.Style {
	st := render.DefaultStyle()
	st.Width = cfg.Figure.Width
	st.Height = cfg.Figure.Height
	st.Title = cfg.Figure.Title
	st.XMin = cfg.Grid.Start
	st.XMax = cfg.Grid.End
	return st
}

func runAnimation(cmd *cobra.Command, args []string) error {
	cfg, params, traj, err := prepare(cmd)
	if err != nil {
		return err
	}

	style := frameStyle(cfg)
	surface := render.NewSurface(style)
	defer surface.Close()

	opts := anim.DefaultOptions()
	opts.Delay = cfg.FrameDelay
	opts.FPS = cfg.FPS
	opts.Repeat = cfg.Repeat
	opts.Width = style.Width
	opts.Height = style.Height

	enc, err := anim.Open(cfg.Output, opts)
	if err != nil {
		return err
	}

	driver := anim.NewDriver(surface, traj, params)
	if err := driver.Save(cmd.Context(), enc); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}

	fmt.Printf("wrote %s (%d frames)\n", cfg.Output, driver.Frames())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	_, params, traj, err := prepare(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewReplay(traj, params, frameRate, true), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runPlot(cmd *cobra.Command, args []string) error {
	_, params, traj, err := prepare(cmd)
	if err != nil {
		return err
	}

	graph := asciigraph.PlotMany(
		[][]float64{
			traj.Column(models.Susceptible),
			traj.Column(models.Recovered),
			traj.Column(models.Infected),
		},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Green),
		asciigraph.SeriesLegends("susceptible", "recovered", "infected"),
		asciigraph.Caption(fmt.Sprintf("SIR model  b=%g  k=%g", params.B, params.K)),
	)
	fmt.Println(graph)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
)

func runSummary(cmd *cobra.Command, args []string) error {
	_, params, traj, err := prepare(cmd)
	if err != nil {
		return err
	}

	sum := analysis.Summarize(traj, params)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("SIR summary  b=%g  k=%g", sum.B, sum.K)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value string
	}{
		{"R0", fmt.Sprintf("%.3f", sum.R0)},
		{"herd immunity threshold", fmt.Sprintf("%.3f", sum.HerdThreshold)},
		{"peak infected", fmt.Sprintf("%.4f", sum.PeakInfected)},
		{"peak day", fmt.Sprintf("%.1f", sum.PeakDay)},
		{"final susceptible", fmt.Sprintf("%.4f", sum.FinalSusceptible)},
		{"final recovered", fmt.Sprintf("%.4f", sum.FinalRecovered)},
		{"final infected", fmt.Sprintf("%.4f", sum.FinalInfected)},
		{"attack rate", fmt.Sprintf("%.4f", sum.AttackRate)},
		{"mass drift", fmt.Sprintf("%.2e", sum.MassDrift)},
		{"samples", fmt.Sprintf("%d", sum.Samples)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render(r.label), r.value)
	}
	return w.Flush()
}

func runPhase(cmd *cobra.Command, args []string) error {
	_, _, traj, err := prepare(cmd)
	if err != nil {
		return err
	}

	portrait, err := analysis.PhasePortrait(traj, models.Susceptible, models.Infected)
	if err != nil {
		return err
	}

	fmt.Println("infected (y) vs susceptible (x)")
	fmt.Print(analysis.PhasePortraitToASCII(portrait, plotWidth, plotHeight))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tB\tK\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		r, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\n", name, r.B, r.K, r.Description)
	}
	return w.Flush()
}
