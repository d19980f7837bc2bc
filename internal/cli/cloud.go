package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/greenroi/internal/engine"
	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/ingest"
)

// newCloudCmd creates the cloud command, which totals a provider emissions
// export and prices it with the carbon price.
func newCloudCmd() *cobra.Command {
	var (
		file        string
		carbonPrice float64
		output      string
	)

	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Total and price a cloud provider emissions export",
		Long: `Sums the first column whose header mentions both "kg" and "CO2" in a CSV or
XLSX export (AWS, Azure, Alibaba and similar) and prices it with the carbon
price. Cloud emissions are reported separately from the equipment fleet.`,
		Example: `  greenroi cloud --file aws-carbon.csv
  greenroi cloud --file azure.xlsx --carbon-price 0.1 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			a := cfg.Assumptions
			if cmd.Flags().Changed("carbon-price") {
				a.CarbonPricePerKg = carbonPrice
			}
			if err := a.Validate(); err != nil {
				return err
			}

			em, err := ingest.LoadCloudFile(ctx, file)
			if err != nil {
				return err
			}
			total := engine.NewCloudCarbon(em.Column, em.TotalKg, a)

			if output == outputJSON {
				return renderJSONValue(cmd.OutOrStdout(), struct {
					engine.CloudCarbon
					Rows    int `json:"rows"`
					Skipped int `json:"skipped"`
				}{total, em.Rows, em.Skipped})
			}

			cmd.Printf("Column:      %s\n", total.Column)
			cmd.Printf("Rows:        %d (%d skipped)\n", em.Rows, em.Skipped)
			cmd.Printf("Emissions:   %s\n", greenops.FormatKg(total.TotalKg))
			cmd.Printf("Carbon cost: %s\n", greenops.FormatEuro(total.CarbonCost))
			if eq, eqErr := greenops.Calculate(total.TotalKg); eqErr == nil && !eq.IsEmpty {
				cmd.Println(eq.DisplayText)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "cloud emissions export (.csv, .xlsx)")
	cmd.Flags().Float64Var(&carbonPrice, "carbon-price", engine.DefaultAssumptions().CarbonPricePerKg,
		"carbon price in €/kg CO2e")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
