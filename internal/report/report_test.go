package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wonny/stockscreen/internal/contracts"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/logger"
)

func sampleRecords() []contracts.StockRecord {
	return []contracts.StockRecord{
		{Symbol: "AAA", Sector: "technology", Price: 30, SalesPerShare: 20, SharesOutstanding: 10, Liquidity: 2.5, Date: "2026-01-02", PriceToSales: 1.5, MarketCap: 300, Rating: contracts.RatingExcellent},
		{Symbol: "BBB", Sector: "healthcare", Price: 75, SalesPerShare: 15, SharesOutstanding: 8, Liquidity: 2, Date: "2026-01-02", PriceToSales: 5, MarketCap: 600, Rating: contracts.RatingGood},
		{Symbol: "CCC", Sector: "technology", Price: 60, SalesPerShare: 20, SharesOutstanding: 4, Liquidity: 1.2, Date: "2026-01-02", PriceToSales: 3, MarketCap: 240, Rating: contracts.RatingGood},
	}
}

func TestCSVRoundTrip_Gainers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", TopGainersFile)
	rows := []contracts.GainerRow{
		{Symbol: "TSLA", Name: "Tesla Inc", Price: 250.5, ChangePercent: 6.25, Volume: 1_200_000, Exchange: "NASDAQ"},
		{Symbol: "AAPL", Name: "Apple Inc", Price: 189.25, ChangePercent: 1.53, Volume: 51_234_567, Exchange: "NASDAQ"},
	}

	require.NoError(t, WriteCSV(path, rows))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "symbol,name,price,change_percent,volume,exchange\n"))

	got, err := ReadCSV[contracts.GainerRow](path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCSVRoundTrip_HighROE(t *testing.T) {
	path := filepath.Join(t.TempDir(), HighROEFile)
	rows := []contracts.HighROERow{
		{Symbol: "AAPL", Name: "Apple Inc", Price: 189.25, ROE: 147.25, Volume: 5000, Sector: "Technology", PriceToSales: 7.8},
	}

	require.NoError(t, WriteCSV(path, rows))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "symbol,name,price,roe,volume,sector,p/s_ratio\n"))

	got, err := ReadCSV[contracts.HighROERow](path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCSVRoundTrip_StockRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecommendedCSVFile)
	records := sampleRecords()

	require.NoError(t, WriteCSV(path, records))

	got, err := ReadCSV[contracts.StockRecord](path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", RecommendedExcelFile)

	require.NoError(t, WriteExcel(path, sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"excellent_stocks", "good_stocks"}, f.GetSheetList())

	excellent, err := f.GetRows("excellent_stocks")
	require.NoError(t, err)
	require.Len(t, excellent, 2)
	assert.Equal(t, "symbol", excellent[0][0])
	assert.Equal(t, "rating", excellent[0][9])
	assert.Equal(t, "AAA", excellent[1][0])

	good, err := f.GetRows("good_stocks")
	require.NoError(t, err)
	require.Len(t, good, 3)
	for _, row := range good[1:] {
		assert.Equal(t, "good", row[9])
	}
}

func TestWriteExcel_SkipsEmptyCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecommendedExcelFile)
	records := sampleRecords()[1:]

	require.NoError(t, WriteExcel(path, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"good_stocks"}, f.GetSheetList())
}

func TestWriteExcel_NoRecordsKeepsOneSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), RecommendedExcelFile)

	require.NoError(t, WriteExcel(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"excellent_stocks"}, f.GetSheetList())
	rows, err := f.GetRows("excellent_stocks")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "html", AnalysisSummaryFile)
	generatedAt := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

	require.NoError(t, WriteHTML(path, sampleRecords(), generatedAt))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, "Stock Analysis Report", doc.Find("title").Text())
	assert.Contains(t, doc.Find("#generated").Text(), "2026-03-04 09:30")

	src, ok := doc.Find("script[src]").Attr("src")
	require.True(t, ok)
	assert.Contains(t, src, "cdn.plot.ly")

	assert.Equal(t, 1, doc.Find("#chart1").Length())
	assert.Equal(t, 1, doc.Find("#chart2").Length())

	rows := doc.Find("#excellent tbody tr")
	require.Equal(t, 1, rows.Length(), "only excellent rows are tabulated")
	assert.Equal(t, "AAA", rows.First().Find("td").First().Text())

	script := doc.Find("script:not([src])").Text()
	assert.Contains(t, script, `"type":"scatter"`)
	assert.Contains(t, script, `"type":"box"`)
	assert.Contains(t, script, `"healthcare"`)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	emitter := NewEmitter(dir, logger.Nop())

	err := emitter.Generate(sampleRecords(), []string{screenconfig.FormatExcel, screenconfig.FormatHTML, screenconfig.FormatCSV})
	require.NoError(t, err)

	for _, name := range []string{RecommendedExcelFile, AnalysisSummaryFile, RecommendedCSVFile} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestGenerate_OnlyRequestedFormats(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, NewEmitter(dir, logger.Nop()).Generate(sampleRecords(), []string{screenconfig.FormatHTML}))

	assert.FileExists(t, filepath.Join(dir, AnalysisSummaryFile))
	assert.NoFileExists(t, filepath.Join(dir, RecommendedExcelFile))
	assert.NoFileExists(t, filepath.Join(dir, RecommendedCSVFile))
}

func TestGenerate_FailureDoesNotStopOtherFormats(t *testing.T) {
	dir := t.TempDir()
	// a directory where the workbook should go makes the excel write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, RecommendedExcelFile), 0o755))

	err := NewEmitter(dir, logger.Nop()).Generate(sampleRecords(), []string{screenconfig.FormatExcel, screenconfig.FormatHTML})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "excel report")
	assert.FileExists(t, filepath.Join(dir, AnalysisSummaryFile))
}

func TestTimeSeriesFile(t *testing.T) {
	assert.Equal(t, "AAPL_time_series.csv", TimeSeriesFile("AAPL"))
}
