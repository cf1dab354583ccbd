package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/internal/report"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/internal/selection"
	"github.com/wonny/stockscreen/internal/valuation"
	"github.com/wonny/stockscreen/pkg/config"
	"github.com/wonny/stockscreen/pkg/logger"
)

// DataSource is everything the runner fetches from the market data API
type DataSource interface {
	contracts.MarketDataSource
	contracts.HistorySource
}

type statsReporter interface {
	Stats() (hits, misses int)
}

// Runner coordinates the screen, filter and history pipelines
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Runner struct {
	cfg          *config.Config
	screenCfg    *screenconfig.Config
	source       DataSource
	screener     *selection.Screener
	preprocessor *valuation.Preprocessor
	emitter      *report.Emitter
	runID        string
	logger       *logger.Logger
}

// ScreenRunResult holds the outcome of the live screens
type ScreenRunResult struct {
	RunID    string
	Gainers  *contracts.ScreenResult[contracts.GainerRow]
	HighROE  *contracts.ScreenResult[contracts.HighROERow]
	Files    []string
	Stages   []contracts.PipelineResult
	Duration time.Duration
}

// FilterRunResult holds the outcome of the local filter pipeline
type FilterRunResult struct {
	RunID       string
	Loaded      int
	Processed   []contracts.StockRecord
	Recommended []contracts.StockRecord
	Stages      []contracts.PipelineResult
	Duration    time.Duration
}

// NewRunner creates a runner with a fresh run ID
func NewRunner(cfg *config.Config, screenCfg *screenconfig.Config, source DataSource, log *logger.Logger) *Runner {
	runID := uuid.NewString()
	log = log.WithField("run_id", runID)

	return &Runner{
		cfg:          cfg,
		screenCfg:    screenCfg,
		source:       source,
		screener:     selection.NewScreener(source, screenCfg.Screening, log),
		preprocessor: valuation.NewPreprocessor(screenCfg, log),
		emitter:      report.NewEmitter(cfg.OutputDir, log),
		runID:        runID,
		logger:       log,
	}
}

// RunID returns the identifier attached to every log line of this run
func (r *Runner) RunID() string {
	return r.runID
}

// RunScreens runs both live screens and writes their CSV files.
// A missing API key fails before any request is made.
func (r *Runner) RunScreens(ctx context.Context) (*ScreenRunResult, error) {
	start := time.Now()
	result := &ScreenRunResult{RunID: r.runID}

	if err := r.screenCfg.RequireAPIKey(); err != nil {
		return result, err
	}

	r.logger.WithFields(map[string]interface{}{
		"symbols":  len(r.screenCfg.TwelveData.Symbols),
		"exchange": r.screenCfg.TwelveData.Exchange,
	}).Info("Starting screens")

	stageStart := time.Now()
	result.Gainers = r.screener.Gainers(ctx)
	result.Stages = append(result.Stages, screenStage(contracts.StageGainers, stageStart, result.Gainers.Scanned, len(result.Gainers.Rows), result.Gainers.Skipped))

	stageStart = time.Now()
	result.HighROE = r.screener.HighROE(ctx)
	result.Stages = append(result.Stages, screenStage(contracts.StageHighROE, stageStart, result.HighROE.Scanned, len(result.HighROE.Rows), result.HighROE.Skipped))

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("screens interrupted: %w", err)
	}

	// SCREEN_REPORT: a failed file does not stop the other one
	stageStart = time.Now()
	writes := []struct {
		name  string
		write func(path string) error
	}{
		{report.TopGainersFile, func(p string) error { return report.WriteCSV(p, result.Gainers.Rows) }},
		{report.HighROEFile, func(p string) error { return report.WriteCSV(p, result.HighROE.Rows) }},
	}

	var errs []error
	for _, w := range writes {
		path := r.emitter.Path(w.name)
		if err := w.write(path); err != nil {
			r.logger.WithError(err).WithField("path", path).Error("Screen report write failed")
			errs = append(errs, err)
			continue
		}
		result.Files = append(result.Files, path)
	}

	if err := errors.Join(errs...); err != nil {
		result.Stages = append(result.Stages, failedStage(contracts.StageScreenReport, stageStart, err))
		return result, fmt.Errorf("%s failed: %w", contracts.StageScreenReport, err)
	}

	result.Stages = append(result.Stages, contracts.PipelineResult{
		Stage:       contracts.StageScreenReport,
		Success:     true,
		InputCount:  len(result.Gainers.Rows) + len(result.HighROE.Rows),
		OutputCount: len(result.Files),
		Duration:    time.Since(stageStart).Milliseconds(),
	})
	result.Duration = time.Since(start)

	fields := map[string]interface{}{
		"gainers":     len(result.Gainers.Rows),
		"high_roe":    len(result.HighROE.Rows),
		"partial":     result.Gainers.Partial() || result.HighROE.Partial(),
		"duration_ms": result.Duration.Milliseconds(),
	}
	if s, ok := r.source.(statsReporter); ok {
		fields["cache_hits"], fields["api_lookups"] = s.Stats()
	}
	r.logger.WithFields(fields).Info("Screens completed")

	return result, nil
}

// RunFilter loads the input CSV, rates it and writes the configured reports
func (r *Runner) RunFilter(ctx context.Context) (*FilterRunResult, error) {
	start := time.Now()
	result := &FilterRunResult{RunID: r.runID}

	r.logger.WithField("input", r.cfg.InputCSV).Info("Starting filter")

	// FILTER_LOAD
	stageStart := time.Now()
	records, err := valuation.LoadStockData(r.cfg.InputCSV, r.logger)
	if err != nil {
		result.Stages = append(result.Stages, failedStage(contracts.StageLoad, stageStart, err))
		return result, fmt.Errorf("%s failed: %w", contracts.StageLoad, err)
	}
	result.Loaded = len(records)
	result.Stages = append(result.Stages, okStage(contracts.StageLoad, stageStart, len(records), len(records)))

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// FILTER_PREPROCESS
	stageStart = time.Now()
	result.Processed = r.preprocessor.Preprocess(records)
	result.Stages = append(result.Stages, okStage(contracts.StagePreprocess, stageStart, len(records), len(result.Processed)))

	// FILTER_RECOMMEND
	stageStart = time.Now()
	result.Recommended = valuation.Recommend(result.Processed)
	result.Stages = append(result.Stages, okStage(contracts.StageRecommend, stageStart, len(result.Processed), len(result.Recommended)))

	// FILTER_REPORT
	stageStart = time.Now()
	formats := r.screenCfg.ReportSettings.OutputFormats
	if err := r.emitter.Generate(result.Recommended, formats); err != nil {
		result.Stages = append(result.Stages, failedStage(contracts.StageReport, stageStart, err))
		return result, fmt.Errorf("%s failed: %w", contracts.StageReport, err)
	}
	result.Stages = append(result.Stages, okStage(contracts.StageReport, stageStart, len(result.Recommended), len(formats)))
	result.Duration = time.Since(start)

	r.logger.WithFields(map[string]interface{}{
		"loaded":      result.Loaded,
		"recommended": len(result.Recommended),
		"duration_ms": result.Duration.Milliseconds(),
	}).Info("Filter completed")

	return result, nil
}

// RunHistory fetches daily bars for one symbol and writes <SYMBOL>_time_series.csv
func (r *Runner) RunHistory(ctx context.Context, symbol string, days int) (string, []contracts.Bar, error) {
	if err := r.screenCfg.RequireAPIKey(); err != nil {
		return "", nil, err
	}
	if symbol == "" {
		return "", nil, fmt.Errorf("symbol is required")
	}
	if days <= 0 {
		return "", nil, fmt.Errorf("days must be positive, got %d", days)
	}

	bars, ok := r.source.TimeSeries(ctx, symbol, days)
	if !ok {
		return "", nil, fmt.Errorf("no time series data for %s", symbol)
	}

	path := r.emitter.Path(report.TimeSeriesFile(symbol))
	if err := report.WriteCSV(path, bars); err != nil {
		r.logger.WithError(err).WithField("path", path).Error("Time series write failed")
		return "", bars, err
	}

	r.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(bars),
		"path":   path,
	}).Info("Time series saved")

	return path, bars, nil
}

func okStage(stage contracts.Stage, start time.Time, in, out int) contracts.PipelineResult {
	return contracts.PipelineResult{
		Stage:       stage,
		Success:     true,
		InputCount:  in,
		OutputCount: out,
		Duration:    time.Since(start).Milliseconds(),
	}
}

func failedStage(stage contracts.Stage, start time.Time, err error) contracts.PipelineResult {
	return contracts.PipelineResult{
		Stage:    stage,
		Success:  false,
		Duration: time.Since(start).Milliseconds(),
		Error:    err.Error(),
	}
}

func screenStage(stage contracts.Stage, start time.Time, scanned, passed int, skipped []string) contracts.PipelineResult {
	res := okStage(stage, start, scanned, passed)
	if len(skipped) > 0 {
		res.Metadata = map[string]interface{}{"skipped": skipped}
	}
	return res
}
