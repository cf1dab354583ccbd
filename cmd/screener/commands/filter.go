package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// filterCmd runs only the local P/S filter
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Price-to-sales filter over the local stock CSV",
	Long: `Loads SCREENER_INPUT_CSV, drops excluded sectors and rows below the
liquidity and market cap minimums, rates each stock by P/S ratio and writes
the configured reports (recommended_stocks.xlsx, analysis_summary.html,
recommended_stocks.csv). No API key is needed.

Example:
  go run ./cmd/screener filter`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		PrintHeader("P/S Filter", env.runner.RunID())
		return runFilter(cmd.Context(), env)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func runFilter(ctx context.Context, env *environment) error {
	result, err := env.runner.RunFilter(ctx)
	if result != nil && len(result.Recommended) > 0 {
		PrintSection(fmt.Sprintf("Recommended (%d of %d loaded)", len(result.Recommended), result.Loaded))
		widths := []int{10, 10, 16, 10, 10, 12}
		PrintTableHeader([]string{"RATING", "SYMBOL", "SECTOR", "PRICE", "P/S", "LIQUIDITY"}, widths)
		for _, r := range result.Recommended {
			PrintTableRow([]string{
				string(r.Rating), r.Symbol, truncate(r.Sector, widths[2]),
				formatFloat(r.Price), formatFloat(r.PriceToSales), formatFloat(r.Liquidity),
			}, widths)
		}
	}
	if err != nil {
		return err
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Reports written to %s (%v)", env.cfg.OutputDir, env.screenCfg.ReportSettings.OutputFormats))
	return nil
}
