package contracts

// GainerRow is one ranked row of the gainers screen.
// CSV headers are consumed downstream and must not change.
type GainerRow struct {
	Symbol        string  `csv:"symbol" json:"symbol"`
	Name          string  `csv:"name" json:"name"`
	Price         float64 `csv:"price" json:"price"`
	ChangePercent float64 `csv:"change_percent" json:"change_percent"`
	Volume        int64   `csv:"volume" json:"volume"`
	Exchange      string  `csv:"exchange" json:"exchange"`
}

// HighROERow is one ranked row of the ROE screen
type HighROERow struct {
	Symbol       string  `csv:"symbol" json:"symbol"`
	Name         string  `csv:"name" json:"name"`
	Price        float64 `csv:"price" json:"price"`
	ROE          float64 `csv:"roe" json:"roe"`
	Volume       int64   `csv:"volume" json:"volume"`
	Sector       string  `csv:"sector" json:"sector"`
	PriceToSales float64 `csv:"p/s_ratio" json:"ps_ratio"`
}

// ScreenResult is the ordered output of one screening run
// ⭐ SSOT: 스크리닝 결과 전달
type ScreenResult[T any] struct {
	Name     string         `json:"name"`
	Rows     []T            `json:"rows"`     // ranked, every row passed all predicates
	Scanned  int            `json:"scanned"`  // symbols looked at
	Skipped  []string       `json:"skipped"`  // symbols dropped because a fetch failed
	Filtered map[string]int `json:"filtered"` // filter name -> count
}

// NewScreenResult creates an empty result
func NewScreenResult[T any](name string) *ScreenResult[T] {
	return &ScreenResult[T]{
		Name:     name,
		Rows:     make([]T, 0),
		Skipped:  make([]string, 0),
		Filtered: make(map[string]int),
	}
}

// Partial reports whether any symbol was skipped because its data could not be fetched
func (r *ScreenResult[T]) Partial() bool {
	return len(r.Skipped) > 0
}
