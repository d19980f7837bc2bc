package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/greenroi/internal/config"
	"github.com/rshade/greenroi/internal/logging"
)

// annotationSkipConfig marks commands that must run even when the config
// file is broken. They get the built-in defaults.
const annotationSkipConfig = "greenroi/skip-config"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type (
	configKey    struct{}
	configErrKey struct{}
)

// configFromContext returns the configuration loaded for this run.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// configErrFromContext returns the load error of a command annotated with
// annotationSkipConfig, or nil.
func configErrFromContext(ctx context.Context) error {
	if err, ok := ctx.Value(configErrKey{}).(error); ok {
		return err
	}
	return nil
}

// NewRootCmd creates the root Cobra command for the greenroi CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env
// lookup for testability. args includes the program name.
func NewRootCmdWithArgs(
	ver string,
	args []string,
	lookupEnv config.LookupFunc,
) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "greenroi",
		Short: "Green ROI: keep, buy or lease your IT fleet",
		Long: `greenroi reads an equipment inventory, estimates each line's yearly energy,
carbon footprint and total cost of ownership, and recommends whether to keep,
buy or lease it by weighing financial, ecological and organizational criteria.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loadErr, err := loadConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			if loadErr != nil {
				cmd.SetContext(context.WithValue(cmd.Context(), configErrKey{}, loadErr))
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $GREENROI_HOME/config.yaml or ~/.greenroi/config.yaml)")
	cmd.AddCommand(newAnalyzeCmd(), newCloudCmd(), newClassifyCmd(), newConfigCmd(), newCacheCmd())

	if len(args) > 0 {
		cmd.SetArgs(args[1:])
	}
	return cmd
}

// loadConfig reads the config for the command about to run. Commands
// annotated with annotationSkipConfig get the defaults and the load error
// as loadErr instead of failing.
//
//nolint:nonamedreturns // Named returns tell the two errors apart.
func loadConfig(cmd *cobra.Command, lookupEnv config.LookupFunc) (cfg *config.Config, loadErr, err error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err = config.LoadWithLookup(path, lookupEnv)
	if err != nil {
		if _, skip := cmd.Annotations[annotationSkipConfig]; skip {
			return config.New(), err, nil
		}
		return nil, nil, err
	}
	return cfg, nil, nil
}

const rootCmdExample = `  # Evaluate an inventory and print the recommendation table
  greenroi analyze --inventory parc.xlsx

  # Use a higher carbon price and export the results
  greenroi analyze --inventory parc.csv --carbon-price 0.1 --export results.xlsx

  # Browse results interactively
  greenroi analyze --inventory parc.csv --interactive

  # Total a cloud provider's emissions export
  greenroi cloud --file aws-carbon.csv

  # See which category a label resolves to
  greenroi classify "Ecran Dell 27" "iPhone 13"

  # Write a default configuration file
  greenroi config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
