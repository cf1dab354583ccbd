package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/wonny/stockscreen/internal/contracts"
)

//go:embed templates/analysis_summary.html
var templateFS embed.FS

var summaryTemplate = template.Must(
	template.New("analysis_summary.html").
		Funcs(template.FuncMap{"num": formatNumber}).
		ParseFS(templateFS, "templates/analysis_summary.html"),
)

// trace is one plotly series; html/template encodes it as JSON inside <script>
type trace struct {
	Type string    `json:"type"`
	Mode string    `json:"mode,omitempty"`
	Name string    `json:"name"`
	X    []any     `json:"x"`
	Y    []float64 `json:"y"`
	Text []string  `json:"text,omitempty"`
}

type summaryView struct {
	GeneratedAt string
	Scatter     []trace
	Box         []trace
	Excellent   []contracts.StockRecord
}

// WriteHTML writes the static analysis page: a p/s vs liquidity scatter and a
// p/s by sector box plot (both split by rating) and a table of excellent rows
func WriteHTML(path string, records []contracts.StockRecord, generatedAt time.Time) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	view := summaryView{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		Scatter:     make([]trace, 0, len(contracts.RecommendedRatings)),
		Box:         make([]trace, 0, len(contracts.RecommendedRatings)),
		Excellent:   filterByRating(records, contracts.RatingExcellent),
	}

	for _, rating := range contracts.RecommendedRatings {
		scatter := trace{Type: "scatter", Mode: "markers", Name: string(rating), X: []any{}, Y: []float64{}}
		box := trace{Type: "box", Name: string(rating), X: []any{}, Y: []float64{}}

		for _, r := range filterByRating(records, rating) {
			if !finite(r.PriceToSales) {
				continue
			}
			box.X = append(box.X, r.Sector)
			box.Y = append(box.Y, r.PriceToSales)

			if !finite(r.Liquidity) {
				continue
			}
			scatter.X = append(scatter.X, r.PriceToSales)
			scatter.Y = append(scatter.Y, r.Liquidity)
			scatter.Text = append(scatter.Text, r.Symbol+" ("+r.Sector+")")
		}

		view.Scatter = append(view.Scatter, scatter)
		view.Box = append(view.Box, box)
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatNumber(v float64) string {
	if !finite(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
