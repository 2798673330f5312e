package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yieldloop/namada-compounder/internal/compounding"
)

// EstimateCmd runs the optimizer on the given figures without touching the
// chain, e.g.
// ./namada-compounder estimate --principal 3000000 --apr 0.118 --fee 5
func EstimateCmd() *cobra.Command {
	var (
		principal     float64
		apr           float64
		fee           float64
		maxIterations int
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimates the optimal compounding schedule for a bonded balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			optimizer := compounding.NewOptimizer(compounding.WithMaxIterations(maxIterations))
			result, err := optimizer.Optimize(principal, apr, fee)
			if err != nil {
				return err
			}

			return printReport(cmd, compounding.NewReport(principal, apr, fee, result))
		},
	}

	cmd.Flags().Float64Var(&principal, "principal", 0, "bonded balance in whole tokens")
	cmd.Flags().Float64Var(&apr, "apr", 0, "net APR after commission, e.g. 0.118")
	cmd.Flags().Float64Var(&fee, "fee", 0, "fees paid per compounding round in whole tokens")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", compounding.DefaultMaxIterations, "optimizer iteration budget")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("apr")

	return cmd
}

func printReport(cmd *cobra.Command, report *compounding.Report) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value string
	}{
		{"Compounding rounds per year", fmt.Sprintf("%d", report.Result.OptimalFrequency)},
		{"Compound every", fmt.Sprintf("%.0f hours (%.0f days)",
			report.Result.HoursBetweenCompoundingRounded(), report.Result.DaysBetweenCompoundingRounded())},
		{"Bonded balance", fmt.Sprintf("%.6f", report.Principal)},
		{"Projected balance in one year", fmt.Sprintf("%.6f", report.Result.MaxProjectedBalance)},
		{"APR", fmt.Sprintf("%.4f%%", report.NetAPR*100)},
		{"APY", fmt.Sprintf("%.4f%%", report.APY()*100)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s:\t%s\n", row.name, row.value); err != nil {
			return err
		}
	}
	return w.Flush()
}
