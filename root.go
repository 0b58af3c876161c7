package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"scenario-runner/internal/calculator"
	"scenario-runner/internal/config"
	"scenario-runner/internal/logging"
	"scenario-runner/internal/metrics"
	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
	"scenario-runner/internal/scenario"
	"scenario-runner/internal/snippet"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario-runner",
		Short: "Run household scenarios against the PolicyEngine API",
		Long: `scenario-runner sends a household situation, optionally with a policy
reform, to the PolicyEngine calculate API and prints the response along
with a code snippet that reproduces the call.

Without a subcommand it starts the web front end.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./"+config.DefaultConfigFile+" or ~/"+config.DefaultConfigFile+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("api", "", "Calculator base URL (default "+calculator.DefaultBaseURL+")")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewDefaultCmd())
	cmd.AddCommand(NewSubmitCmd())
	cmd.AddCommand(NewSnippetCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command needs, built once from config and flags.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	calc     *calculator.Client
	runner   *scenario.Runner
}

func loadEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if api, _ := cmd.Flags().GetString("api"); api != "" {
		cfg.APIBaseURL = api
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	lang, err := snippet.ParseLanguage(cfg.SnippetLanguage)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logOut, cfg.LogLevel)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	calc := calculator.New(cfg.APIBaseURL, calculator.WithLogger(logger))
	runner := scenario.New(calc,
		scenario.WithMetrics(metrics.New(reg)),
		scenario.WithLogger(logger),
		scenario.WithSnippetLanguage(lang))

	return &env{cfg: cfg, logger: logger, registry: reg, calc: calc, runner: runner}, nil
}

// addPanelFlags registers the flags selecting a panel. --mode keeps the name
// of the page's query parameter.
func addPanelFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Jurisdiction: uk or us (default from config)")
	cmd.Flags().Bool("reform", false, "Use the reform panel (situation plus policy)")
}

func panelFromFlags(cmd *cobra.Command, def model.Jurisdiction) (*panels.Panel, error) {
	raw, _ := cmd.Flags().GetString("mode")
	j, err := model.ParseJurisdiction(raw, def)
	if err != nil {
		return nil, err
	}
	m := model.ModeBaseline
	if reform, _ := cmd.Flags().GetBool("reform"); reform {
		m = model.ModeReform
	}
	return panels.Get(j, m)
}
