package selection

import (
	"sort"

	"github.com/wonny/stockscreen/internal/contracts"
)

// RankGainers sorts by percent change descending.
// Ties fall back to symbol ascending so output is reproducible.
func RankGainers(rows []contracts.GainerRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ChangePercent != rows[j].ChangePercent {
			return rows[i].ChangePercent > rows[j].ChangePercent
		}
		return rows[i].Symbol < rows[j].Symbol
	})
}

// RankHighROE sorts by ROE descending, then symbol ascending
func RankHighROE(rows []contracts.HighROERow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ROE != rows[j].ROE {
			return rows[i].ROE > rows[j].ROE
		}
		return rows[i].Symbol < rows[j].Symbol
	})
}
