package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyDays int

// historyCmd saves daily bars for one symbol
var historyCmd = &cobra.Command{
	Use:   "history <symbol>",
	Short: "Daily time series for one symbol (Twelve Data)",
	Long: `Fetches daily bars for the last N days and writes <SYMBOL>_time_series.csv
to the output directory.

Flags:
  --days    lookback in days (default: SCREENER_HISTORY_DAYS or 30)

Example:
  go run ./cmd/screener history AAPL
  go run ./cmd/screener history MSFT --days 90`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyDays, "days", 0, "lookback in days (default: SCREENER_HISTORY_DAYS)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	days := historyDays
	if days == 0 {
		days = env.cfg.HistoryDays
	}

	PrintHeader("History "+symbol, env.runner.RunID())
	PrintKeyValue("Days", fmt.Sprintf("%d", days), 8)

	path, bars, err := env.runner.RunHistory(cmd.Context(), symbol, days)
	if err != nil {
		return err
	}

	if len(bars) > 0 {
		first, last := bars[0], bars[len(bars)-1]
		PrintKeyValue("Range", first.Date+" ~ "+last.Date, 8)
		PrintKeyValue("Close", formatFloat(first.Close)+" → "+formatFloat(last.Close), 8)
	}
	fmt.Println()
	PrintSuccess(fmt.Sprintf("Saved %d bars to %s", len(bars), path))
	return nil
}
