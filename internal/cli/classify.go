package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/greenroi/internal/greenops"
)

// newClassifyCmd creates the classify command, which shows the category,
// duty cycle and embodied CO2 a label resolves to.
func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "classify LABEL...",
		Short:   "Show the device category of equipment labels",
		Example: `  greenroi classify "Ecran Dell 27" "MacBook Pro 14" "Switch Cisco"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LABEL\tCATEGORY\tON W\tSTANDBY W\tON H/DAY\tKWH/YR\tEMBODIED KG\t")
			for _, label := range args {
				c := greenops.Classify(label)
				p := greenops.DefaultPowerProfile(c)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
					label, c,
					greenops.FormatFloat(p.OnWatts, 1),
					greenops.FormatFloat(p.StandbyWatts, 1),
					greenops.FormatFloat(p.OnHours, 0),
					greenops.FormatFloat(p.AnnualKWh(), 1),
					greenops.FormatFloat(greenops.EmbodiedKg(c), 0),
				)
			}
			return tw.Flush()
		},
	}
}
