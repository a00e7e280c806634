package engine

import (
	"regexp"
	"strings"

	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

// headerScanWindow bounds how deep into a sheet the resolver looks for a
// header row. Real sheets put the header within the first few rows, but
// title banners and legend blocks above it are common.
const headerScanWindow = 40

// headerNormalizeRe collapses runs of non-alphanumeric characters so
// "Nurse-Call Config. Group" and "nurse call config group" compare equal.
var headerNormalizeRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader lowercases a header cell and collapses punctuation and
// whitespace runs to single spaces.
func NormalizeHeader(s string) string {
	s = headerNormalizeRe.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(s)
}

// HeaderMap is the result of header resolution: the header row index and
// the column position of every logical field that resolved.
type HeaderMap struct {
	Row  int
	cols map[string]int
}

// Col returns the column index of a logical field. The second return is
// false when no alias of the field matched any header cell.
func (h HeaderMap) Col(field string) (int, bool) {
	c, ok := h.cols[field]
	return c, ok
}

// ResolveHeader locates the header row of a grid and maps logical fields
// to columns via the alias set.
//
// Each row in the scan window is scored as (alias hits x 10) + non-empty
// cell count; the highest score wins, first row on ties. Per field, the
// leftmost column matching any alias wins. Resolution fails softly: a
// grid where no row scores above zero (nil, empty, or blank in the
// window) yields ok=false, and callers treat the sheet as absent.
func ResolveHeader(g *sheet.Grid, aliases schema.SheetAliases) (HeaderMap, bool) {
	if g == nil {
		return HeaderMap{}, false
	}

	aliasSet := make(map[string]bool)
	for _, names := range aliases {
		for _, a := range names {
			aliasSet[NormalizeHeader(a)] = true
		}
	}

	lastRow := g.LastRow()
	if lastRow >= headerScanWindow {
		lastRow = headerScanWindow - 1
	}
	lastCol := g.LastCol()

	bestRow, bestScore := -1, 0
	for r := 0; r <= lastRow; r++ {
		hits, nonEmpty := 0, 0
		for c := 0; c <= lastCol; c++ {
			v := g.Value(r, c)
			if v == "" {
				continue
			}
			nonEmpty++
			if aliasSet[NormalizeHeader(v)] {
				hits++
			}
		}
		// Strict > keeps the first row on ties.
		if score := hits*10 + nonEmpty; score > bestScore {
			bestRow, bestScore = r, score
		}
	}
	if bestRow < 0 {
		return HeaderMap{}, false
	}

	cols := make(map[string]int, len(aliases))
	for field, names := range aliases {
		set := make(map[string]bool, len(names))
		for _, a := range names {
			set[NormalizeHeader(a)] = true
		}
		for c := 0; c <= lastCol; c++ {
			if set[NormalizeHeader(g.Value(bestRow, c))] {
				cols[field] = c
				break
			}
		}
	}
	return HeaderMap{Row: bestRow, cols: cols}, true
}
