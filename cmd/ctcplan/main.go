// ctcplan plans salary offers: take-home pay, savings and time to a savings
// target across a range of annual CTC figures under an Indian slab tax policy.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctcplan/ctc-planner/internal/calculation"
	"github.com/ctcplan/ctc-planner/internal/config"
	"github.com/ctcplan/ctc-planner/internal/domain"
	"github.com/ctcplan/ctc-planner/internal/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the state resolved by the root command before any subcommand runs.
type app struct {
	settings *config.Settings
	logger   *logging.ZapLogger
	policy   domain.TaxPolicy
	engine   *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ctcplan",
		Short: "Take-home, savings and time-to-target planning for a CTC range",
		Long: `ctcplan evaluates annual CTC offers under a slab income-tax policy
with a standard deduction and a rebate. It reports take-home pay, monthly
savings after expenses, months until a savings target is reached, and the
CTC needed for a desired take-home. The same calculations are served over
HTTP by "ctcplan serve".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().String("config", "", "settings file path (default: ./config/ctcplan.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().String("policy", "", "tax policy YAML file (default: built-in reference policy)")

	root.AddCommand(
		newVersionCmd(),
		newTakeHomeCmd(a),
		newSavingsCmd(a),
		newRangeCmd(a),
		newTimeToTargetCmd(a),
		newCTCCmd(a),
		newReportCmd(a),
		newPolicyCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads settings, builds the logger and the engine for the selected policy.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(configFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		settings.Logging.Level = lvl
	}
	if p, _ := cmd.Flags().GetString("policy"); p != "" {
		settings.Policy.File = p
	}
	a.settings = settings

	logger, err := logging.NewZapLogger(settings.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	a.policy = domain.DefaultTaxPolicy()
	if settings.Policy.File != "" {
		policy, err := config.NewPolicyLoader().LoadFromFile(settings.Policy.File)
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}
		if policy.Name == "" {
			policy.Name = settings.Policy.File
		}
		a.policy = *policy
		logger.Debugf("loaded policy %q from %s", policy.Name, settings.Policy.File)
	}

	a.engine = calculation.NewCalculationEngineWithPolicy(a.policy)
	a.engine.SetLogger(logger)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ctcplan %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
