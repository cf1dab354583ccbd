package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd runs the full analysis when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Stock screener - Twelve Data screens and P/S filter reports",
	Long: `Stock screener CLI

Runs the live Twelve Data screens (top gainers, high ROE) and the local
price-to-sales filter over data/raw_stocks.csv, then writes CSV, Excel
and HTML reports.

Configuration:
  .env / environment   ENV, LOG_LEVEL, LOG_FORMAT, SCREENER_CONFIG,
                       SCREENER_INPUT_CSV, SCREENER_OUTPUT_DIR,
                       TWELVE_DATA_API_KEY, HTTP_TIMEOUT
  config/screener.yaml thresholds, rate limit, excluded sectors, formats

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener
  go run ./cmd/screener screen
  go run ./cmd/screener filter
  go run ./cmd/screener history AAPL`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAll,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Ctrl+C cancels in-flight requests and rate-limit waits.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		PrintError(err.Error())
	}
	return err
}

// runAll runs the screens and then the filter.
// The filter runs even when the screens fail; both errors are reported.
func runAll(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	PrintHeader("Stock Screener", env.runner.RunID())

	var errs []error
	if err := runScreens(cmd.Context(), env); err != nil {
		errs = append(errs, fmt.Errorf("screens: %w", err))
	}
	if err := runFilter(cmd.Context(), env); err != nil {
		errs = append(errs, fmt.Errorf("filter: %w", err))
	}

	return errors.Join(errs...)
}
