package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/greenroi/internal/config"
)

// targetConfigPath returns --config when set, otherwise the default path.
func targetConfigPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Writes the built-in defaults to ~/.greenroi/config.yaml ($GREENROI_HOME when
set, or the path given with --config).`,
		Example: `  # Create the default configuration
  greenroi config init

  # Overwrite an existing file
  greenroi config init --force`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := targetConfigPath(cmd)
			if err != nil {
				return err
			}

			if !force {
				_, statErr := os.Stat(path)
				if statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			if err := config.New().Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, environment and defaults are merged.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  greenroi config show
  GREENROI_CARBON_PRICE=0.1 greenroi config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			switch output {
			case outputJSON:
				return renderJSONValue(cmd.OutOrStdout(), cfg)
			case "yaml", "":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(cfg); err != nil {
					return fmt.Errorf("encoding config: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unsupported output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration file and GREENROI_* variables and checks every value:
output and log formats, fabrication source, cache TTL, worker counts and the
bounds of every assumption. Vote weights that do not sum to 1 are reported as
a warning.`,
		Example: `  greenroi config validate
  greenroi config validate --config ./greenroi.yaml --verbose`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := configErrFromContext(ctx); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cfg := configFromContext(ctx)

			if warn := cfg.WeightWarning(); warn != "" {
				cmd.Printf("Warning: %s\n", warn)
			}
			cmd.Printf("Configuration is valid\n")

			if verbose {
				a := cfg.Assumptions
				cmd.Printf("\nCarbon price:       %.4f €/kg\n", a.CarbonPricePerKg)
				cmd.Printf("Electricity price:  %.4f €/kWh\n", a.ElectricityPricePerKWh)
				cmd.Printf("Grid intensity:     %.4f kg/kWh\n", a.GridIntensityKgPerKWh)
				cmd.Printf("Performance ratio:  %.2f\n", a.PerfRatio)
				cmd.Printf("Weights:            fin %.2f, eco %.2f, org %.2f\n",
					a.Weights.Financial, a.Weights.Ecological, a.Weights.Organizational)
				cmd.Printf("Fabrication source: %s\n", cfg.Fabrication.Source)
				cmd.Printf("Output format:      %s\n", cfg.Output.DefaultFormat)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	return cmd
}
