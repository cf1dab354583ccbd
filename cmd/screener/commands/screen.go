package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// screenCmd runs only the live screens
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Top gainers and high ROE screens (Twelve Data)",
	Long: `Fetches quotes and fundamentals for the configured symbols, applies the
price, volume and ROE thresholds, and writes top_gainers.csv and
high_roe_stocks.csv. Calls are throttled to the configured rate limit
(8 per minute on the free tier).

Example:
  go run ./cmd/screener screen`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		PrintHeader("Screens", env.runner.RunID())
		return runScreens(cmd.Context(), env)
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func runScreens(ctx context.Context, env *environment) error {
	result, err := env.runner.RunScreens(ctx)
	if err != nil {
		return err
	}

	PrintSection(fmt.Sprintf("Top Gainers (%d)", len(result.Gainers.Rows)))
	widths := []int{8, 24, 10, 10, 14}
	PrintTableHeader([]string{"SYMBOL", "NAME", "PRICE", "CHANGE%", "VOLUME"}, widths)
	for _, r := range result.Gainers.Rows {
		PrintTableRow([]string{
			r.Symbol, truncate(r.Name, widths[1]), formatFloat(r.Price), formatFloat(r.ChangePercent), formatNumber(r.Volume),
		}, widths)
	}

	PrintSection(fmt.Sprintf("High ROE (%d)", len(result.HighROE.Rows)))
	widths = []int{8, 24, 10, 10, 20}
	PrintTableHeader([]string{"SYMBOL", "NAME", "PRICE", "ROE", "SECTOR"}, widths)
	for _, r := range result.HighROE.Rows {
		PrintTableRow([]string{
			r.Symbol, truncate(r.Name, widths[1]), formatFloat(r.Price), formatFloat(r.ROE), truncate(r.Sector, widths[4]),
		}, widths)
	}

	skipped := append(append([]string{}, result.Gainers.Skipped...), result.HighROE.Skipped...)
	if len(skipped) > 0 {
		PrintWarning(fmt.Sprintf("Partial results: no data for %d symbol lookups", len(skipped)))
		PrintList(skipped)
	}

	fmt.Println()
	for _, f := range result.Files {
		PrintSuccess("Saved " + f)
	}
	return nil
}
