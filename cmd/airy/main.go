package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/njchilds90/airy"
	"github.com/njchilds90/airy/internal/config"
	"github.com/njchilds90/airy/internal/logger"
	"github.com/njchilds90/airy/internal/report"
)

var (
	configFile string
	debug      bool
	format     string
	includeRaw bool
	inner      float64
	outer      float64
	pIn        float64
	pOut       float64
	samples    int
	chart      bool
	pngPath    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cleanup func() error
	rootCmd := &cobra.Command{
		Use:          "airy",
		Short:        "symbolic Airy stress function derivations in polar coordinates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if debug {
				level = "debug"
			}
			cleanup, err = logger.Setup(logger.Config{Level: level, Format: cfg.Log.Format, Writer: cmd.ErrOrStderr()})
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every derivation step")

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "run the full derivation",
		Args:  cobra.NoArgs,
		RunE:  runDerive,
	}
	deriveCmd.Flags().StringVar(&format, "format", "", "output format: text, latex, json or yaml")
	deriveCmd.Flags().BoolVar(&includeRaw, "raw", false, "include the unsimplified biharmonic operator")

	vesselCmd := &cobra.Command{
		Use:   "vessel",
		Short: "solve the thick-walled pressure vessel",
		Args:  cobra.NoArgs,
		RunE:  runVessel,
	}
	vesselCmd.Flags().Float64Var(&inner, "a", config.DefaultInner, "inner radius")
	vesselCmd.Flags().Float64Var(&outer, "b", config.DefaultOuter, "outer radius")
	vesselCmd.Flags().Float64Var(&pIn, "pin", config.DefaultPIn, "internal pressure")
	vesselCmd.Flags().Float64Var(&pOut, "pout", config.DefaultPOut, "external pressure")
	vesselCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of radii to sample")
	vesselCmd.Flags().BoolVar(&chart, "chart", false, "print an ascii chart of the stresses")
	vesselCmd.Flags().StringVar(&pngPath, "png", "", "write a png chart to this path")
	vesselCmd.Flags().StringVar(&format, "format", "", "output format: text, json or yaml")

	odeCmd := &cobra.Command{
		Use:   "ode",
		Short: "solve the radial biharmonic equation",
		Args:  cobra.NoArgs,
		RunE:  runODE,
	}

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "print the tool-call schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), airy.ToolSpec())
			return nil
		},
	}

	rootCmd.AddCommand(deriveCmd, vesselCmd, odeCmd, toolsCmd)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

// resolve merges config file values with flags set on the command line.
func resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Lookup("a") == nil {
		return cfg, cfg.Validate()
	}
	if flags.Changed("a") {
		cfg.Vessel.Inner = inner
	}
	if flags.Changed("b") {
		cfg.Vessel.Outer = outer
	}
	if flags.Changed("pin") {
		cfg.Vessel.PIn = pIn
	}
	if flags.Changed("pout") {
		cfg.Vessel.POut = pOut
	}
	if flags.Changed("samples") {
		cfg.Output.Samples = samples
	}
	if flags.Changed("chart") {
		cfg.Output.Chart = chart
	}
	if flags.Changed("png") {
		cfg.Output.PNG = pngPath
	}
	return cfg, cfg.Validate()
}

func runDerive(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	d, err := airy.Derive(cmd.Context(), airy.Options{Logger: logger.L(), IncludeRaw: includeRaw})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "text":
		fmt.Fprint(out, report.Text(d))
	case "latex":
		fmt.Fprint(out, report.LaTeX(d))
	default:
		return report.Write(out, cfg.Output.Format, d)
	}
	return nil
}

func runVessel(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd)
	if err != nil {
		return err
	}
	v, err := airy.NewVessel(cfg.Vessel.Inner, cfg.Vessel.Outer, cfg.Vessel.PIn, cfg.Vessel.POut)
	if err != nil {
		return err
	}
	sol, err := airy.NewPolar().SolveVessel(v)
	if err != nil {
		return err
	}
	pts, err := sol.Sample(cfg.Output.Samples)
	if err != nil {
		return err
	}
	logger.L().Info("vessel.solved", "A", sol.A.String(), "C", sol.C.String(), "samples", len(pts))

	if cfg.Output.PNG != "" {
		if err := report.SavePNG(cfg.Output.PNG, pts); err != nil {
			return err
		}
		logger.L().Info("vessel.png", "path", cfg.Output.PNG)
	}

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "text", "latex":
		fmt.Fprint(out, report.VesselText(sol, pts))
	default:
		if err := report.Write(out, cfg.Output.Format, report.NewVesselDoc(sol, pts)); err != nil {
			return err
		}
	}
	if cfg.Output.Chart {
		graph, err := report.ASCIIChart(pts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

func runODE(cmd *cobra.Command, args []string) error {
	sol, err := airy.NewPolar().SolveRadialBiharmonic()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "indicial:  %s = 0\n", sol.Indicial)
	for _, root := range sol.Roots {
		fmt.Fprintf(out, "root:      m = %s (multiplicity %d)\n", root.Value, root.Multiplicity)
	}
	fmt.Fprintf(out, "solution:  %s\n", sol.Equation())
	return nil
}
