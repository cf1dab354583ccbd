package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/logger"
)

// Artifact file names. Downstream consumers rely on these.
const (
	TopGainersFile        = "top_gainers.csv"
	HighROEFile           = "high_roe_stocks.csv"
	RecommendedExcelFile  = "recommended_stocks.xlsx"
	AnalysisSummaryFile   = "analysis_summary.html"
	RecommendedCSVFile    = "recommended_stocks.csv"
	timeSeriesFilePattern = "%s_time_series.csv"
)

// TimeSeriesFile returns the artifact name for a symbol's daily history
func TimeSeriesFile(symbol string) string {
	return fmt.Sprintf(timeSeriesFilePattern, symbol)
}

// Emitter writes report artifacts into one output directory
// ⭐ SSOT: 리포트 파일 생성은 여기서만
type Emitter struct {
	outputDir string
	logger    *logger.Logger
	now       func() time.Time
}

// NewEmitter creates a new report emitter
func NewEmitter(outputDir string, logger *logger.Logger) *Emitter {
	return &Emitter{
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// Path returns the full path of an artifact
func (e *Emitter) Path(name string) string {
	return filepath.Join(e.outputDir, name)
}

// Generate writes the recommended set in every requested format.
// A failing format is logged and does not stop the others; all failures
// are returned joined.
func (e *Emitter) Generate(records []contracts.StockRecord, formats []string) error {
	var errs []error

	for _, format := range formats {
		var (
			path string
			err  error
		)

		switch format {
		case screenconfig.FormatExcel:
			path = e.Path(RecommendedExcelFile)
			err = WriteExcel(path, records)
		case screenconfig.FormatHTML:
			path = e.Path(AnalysisSummaryFile)
			err = WriteHTML(path, records, e.now())
		case screenconfig.FormatCSV:
			path = e.Path(RecommendedCSVFile)
			err = WriteCSV(path, records)
		default:
			err = fmt.Errorf("unknown report format %q", format)
		}

		log := e.logger.WithFields(map[string]interface{}{
			"format": format,
			"path":   path,
		})
		if err != nil {
			log.WithError(err).Error("Report generation failed")
			errs = append(errs, fmt.Errorf("%s report: %w", format, err))
			continue
		}
		log.WithField("rows", len(records)).Info("Report generated")
	}

	return errors.Join(errs...)
}
