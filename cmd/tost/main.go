package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gotost/domain/tost"
	"gotost/internal/analysis"
	"gotost/internal/config"
	"gotost/internal/eqplot"
	"gotost/internal/power"
	"gotost/internal/report"
)

func main() {
	// Optional .env, same convention as the rest of the tooling
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "tost",
		Short: "Equivalence testing (TOST) for one- and two-sample designs",
	}

	rootCmd.AddCommand(
		newOneSampleCmd(cfg),
		newTwoSampleCmd(cfg),
		newDatasetCmd(cfg),
		newPowerCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// testFlags are the knobs shared by every test command
type testFlags struct {
	low, high    float64
	smd          bool
	alpha        float64
	minimal      bool
	standardized bool
	plotPath     string
}

func (f *testFlags) register(cmd *cobra.Command, defaultAlpha float64) {
	cmd.Flags().Float64Var(&f.low, "low", 0, "lower equivalence bound")
	cmd.Flags().Float64Var(&f.high, "high", 0, "upper equivalence bound")
	cmd.Flags().BoolVar(&f.smd, "smd", false, "bounds are standardized mean differences")
	cmd.Flags().Float64Var(&f.alpha, "alpha", defaultAlpha, "significance level")
	cmd.Flags().BoolVar(&f.minimal, "minimal-effect", false, "run a minimal-effect test instead of equivalence")
	cmd.Flags().BoolVar(&f.standardized, "standardized", false, "also report Hedges' g with its interval")
	_ = cmd.MarkFlagRequired("low")
	_ = cmd.MarkFlagRequired("high")
}

func (f *testFlags) bounds() tost.EquivalenceBounds {
	if f.smd {
		return tost.SMDBounds(f.low, f.high)
	}
	return tost.RawBounds(f.low, f.high)
}

func (f *testFlags) config() tost.TestConfig {
	cfg := tost.TestConfig{Alpha: f.alpha, Mode: tost.ModeEquivalence, Standardized: f.standardized}
	if f.minimal {
		cfg.Mode = tost.ModeMinimalEffect
	}
	return cfg
}

func (f *testFlags) emit(res *tost.TOSTResult, meta report.Meta) error {
	fmt.Print(report.Markdown(res, meta))
	if f.plotPath != "" {
		if err := eqplot.Save(res, meta.Title, f.plotPath); err != nil {
			return err
		}
		fmt.Printf("\nPlot written to %s\n", f.plotPath)
	}
	return nil
}

func newOneSampleCmd(appCfg *config.Config) *cobra.Command {
	var flags testFlags
	var mean, sd, mu float64
	var n int

	cmd := &cobra.Command{
		Use:   "one-sample",
		Short: "Test one sample against a reference value",
		Long: `Test whether a sample mean is practically equivalent to a reference value.

Raw bounds are absolute target values on the outcome scale; with --smd they
are multiples of the sample standard deviation.

Example: tost one-sample --mean 53.1 --sd 22 --n 100 --mu 50 --low 88 --high 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := tost.OneSample(
				tost.SampleSummary{Mean: mean, SD: sd, N: n},
				mu, flags.bounds(), flags.config())
			if err != nil {
				return err
			}
			return flags.emit(res, report.Meta{Title: "One-sample equivalence test", Design: "one-sample"})
		},
	}

	cmd.Flags().Float64Var(&mean, "mean", 0, "sample mean")
	cmd.Flags().Float64Var(&sd, "sd", 0, "sample standard deviation")
	cmd.Flags().IntVar(&n, "n", 0, "sample size")
	cmd.Flags().Float64Var(&mu, "mu", 0, "reference value")
	for _, name := range []string{"mean", "sd", "n"} {
		_ = cmd.MarkFlagRequired(name)
	}
	flags.register(cmd, appCfg.Test.Alpha)
	cmd.Flags().StringVar(&flags.plotPath, "plot", "", "write an equivalence plot to this path (.svg/.png/.pdf)")

	return cmd
}

func newTwoSampleCmd(appCfg *config.Config) *cobra.Command {
	var flags testFlags
	var mean1, sd1, mean2, sd2 float64
	var n1, n2 int

	cmd := &cobra.Command{
		Use:   "two-sample",
		Short: "Test two independent samples against each other",
		Long: `Welch two-sample equivalence test from summary statistics.

Example: tost two-sample --mean1 80.5 --sd1 14 --n1 57 --mean2 78 --sd2 13 --n2 60 --low -10 --high 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := tost.TwoSample(
				tost.SampleSummary{Mean: mean1, SD: sd1, N: n1},
				tost.SampleSummary{Mean: mean2, SD: sd2, N: n2},
				flags.bounds(), flags.config())
			if err != nil {
				return err
			}
			return flags.emit(res, report.Meta{Title: "Two-sample equivalence test", Design: "two-sample (Welch)"})
		},
	}

	cmd.Flags().Float64Var(&mean1, "mean1", 0, "group 1 mean")
	cmd.Flags().Float64Var(&sd1, "sd1", 0, "group 1 standard deviation")
	cmd.Flags().IntVar(&n1, "n1", 0, "group 1 sample size")
	cmd.Flags().Float64Var(&mean2, "mean2", 0, "group 2 mean")
	cmd.Flags().Float64Var(&sd2, "sd2", 0, "group 2 standard deviation")
	cmd.Flags().IntVar(&n2, "n2", 0, "group 2 sample size")
	for _, name := range []string{"mean1", "sd1", "n1", "mean2", "sd2", "n2"} {
		_ = cmd.MarkFlagRequired(name)
	}
	flags.register(cmd, appCfg.Test.Alpha)
	cmd.Flags().StringVar(&flags.plotPath, "plot", "", "write an equivalence plot to this path (.svg/.png/.pdf)")

	return cmd
}

func newDatasetCmd(appCfg *config.Config) *cobra.Command {
	var flags testFlags
	var file, outcome, group, title, outDir string
	var mu float64
	var html, plotOut bool

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Run an equivalence analysis over an Excel or CSV file",
		Long: `Read a dataset file, reduce the outcome column to summary statistics and
run the equivalence test. With --group the named column must split the data
into exactly two groups (Welch two-sample); without it the outcome is tested
one-sample against --mu.

Example: tost dataset --file course.xlsx --outcome score --group condition --low -10 --high 10 --out results`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = appCfg.Paths.DataFile
			}
			if outDir == "" {
				outDir = appCfg.Paths.OutputDir
			}

			res, err := analysis.Run(cmd.Context(), analysis.Request{
				Title:     title,
				DataFile:  file,
				Outcome:   outcome,
				Group:     group,
				Mu:        mu,
				Bounds:    flags.bounds(),
				Config:    flags.config(),
				OutputDir: outDir,
				Plot:      plotOut,
				HTML:      html,
			})
			if err != nil {
				return err
			}

			fmt.Print(res.Report)
			for _, f := range res.Files {
				fmt.Printf("Wrote %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "dataset file (.xlsx or .csv); defaults to TOST_DATA_FILE")
	cmd.Flags().StringVar(&outcome, "outcome", "", "numeric outcome column")
	cmd.Flags().StringVar(&group, "group", "", "grouping column (omit for a one-sample test)")
	cmd.Flags().StringVar(&title, "title", "Equivalence analysis", "report title")
	cmd.Flags().StringVar(&outDir, "out", "", "artifact directory; defaults to TOST_OUTPUT_DIR")
	cmd.Flags().Float64Var(&mu, "mu", 0, "reference value for the one-sample case")
	cmd.Flags().BoolVar(&html, "html", false, "also write an HTML report")
	cmd.Flags().BoolVar(&plotOut, "plot", false, "also write an equivalence plot into the artifact directory")
	_ = cmd.MarkFlagRequired("outcome")
	flags.register(cmd, appCfg.Test.Alpha)

	return cmd
}

func newPowerCmd(appCfg *config.Config) *cobra.Command {
	var n int
	var alpha, pow float64
	var design string

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Smallest effect a historical design could detect",
		Long: `Compute the standardized effect size a design had the given power to
detect, for use as a smallest-effect-of-interest equivalence bound.

Example: tost power --n 57 --power 0.33 --design two_sample`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := power.DetectableEffect(n, alpha, pow, power.Design(design))
			if err != nil {
				return err
			}
			b := tost.SymmetricSMD(d)
			fmt.Printf("Detectable effect at %.0f%% power: d = %.4f\n", pow*100, d)
			fmt.Printf("Suggested equivalence bounds: [%.4f, %.4f] SMD\n", b.Low, b.High)
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 0, "sample size per group (or total, one-sample)")
	cmd.Flags().Float64Var(&alpha, "alpha", appCfg.Test.Alpha, "one-sided significance level")
	cmd.Flags().Float64Var(&pow, "power", 0.8, "target power")
	cmd.Flags().StringVar(&design, "design", string(power.TwoSample), "one_sample or two_sample")
	_ = cmd.MarkFlagRequired("n")

	return cmd
}
