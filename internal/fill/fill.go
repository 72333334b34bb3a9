// Package fill tracks which paint-by-number cells the user has filled in.
//
// The tracker is a flat set keyed by lattice coordinate, bound to the cells
// of one conversion at a time. Rebinding installs the new board and clears
// every fill; there is no merging of progress across conversions and no
// undo history. The tracker performs no locking of its own; the owner
// serializes access.
package fill

import (
	"sort"

	"github.com/ironsheep/paintbynum-mcp/internal/grid"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Key addresses a cell by its lattice coordinate.
type Key struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Tracker records fill state for the currently bound board. All operations
// on a bound tracker are O(1) in the number of cells.
type Tracker struct {
	codes  map[Key]palette.Code
	filled map[Key]bool

	totalPerCode  []int
	filledPerCode []int
}

// NewTracker returns an empty tracker bound to no board. Every Fill on it
// is a no-op until Bind installs cells.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Bind installs the cells of a fresh conversion and clears all fills. The
// clear is unconditional: fills never survive a reconversion, even one
// that produced an identical board.
func (t *Tracker) Bind(cells []grid.Cell) {
	t.codes = make(map[Key]palette.Code, len(cells))
	maxCode := palette.Code(0)
	for _, c := range cells {
		t.codes[Key{X: c.X, Y: c.Y}] = c.Code
		if c.Code > maxCode {
			maxCode = c.Code
		}
	}

	t.filled = make(map[Key]bool, len(cells))
	t.totalPerCode = make([]int, int(maxCode)+1)
	t.filledPerCode = make([]int, int(maxCode)+1)
	for _, c := range cells {
		t.totalPerCode[c.Code]++
	}
}

// Fill marks the cell at (x,y) filled if such a cell exists and its
// assigned code matches the one given. Anything else (no such cell, a
// mismatched code, an already filled cell) leaves the tracker unchanged.
// The return value reports whether state changed.
func (t *Tracker) Fill(x, y int, code palette.Code) bool {
	k := Key{X: x, Y: y}
	assigned, ok := t.codes[k]
	if !ok || assigned != code || t.filled[k] {
		return false
	}
	t.filled[k] = true
	t.filledPerCode[code]++
	return true
}

// Unfill clears the fill at (x,y), reporting whether one was present.
func (t *Tracker) Unfill(x, y int) bool {
	k := Key{X: x, Y: y}
	if !t.filled[k] {
		return false
	}
	delete(t.filled, k)
	t.filledPerCode[t.codes[k]]--
	return true
}

// Filled reports whether the cell at (x,y) is filled.
func (t *Tracker) Filled(x, y int) bool {
	return t.filled[Key{X: x, Y: y}]
}

// Count returns the number of filled cells.
func (t *Tracker) Count() int {
	return len(t.filled)
}

// Reset clears every fill but keeps the bound board.
func (t *Tracker) Reset() {
	t.filled = make(map[Key]bool, len(t.codes))
	for i := range t.filledPerCode {
		t.filledPerCode[i] = 0
	}
}

// Keys returns the filled cells sorted by row then column. The order is
// deterministic so that serialized fill state is stable.
func (t *Tracker) Keys() []Key {
	keys := make([]Key, 0, len(t.filled))
	for k := range t.filled {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}

// Restore re-applies previously serialized fills onto the bound board.
// Keys that no longer address a cell are dropped silently; it returns how
// many fills were applied.
func (t *Tracker) Restore(keys []Key) int {
	applied := 0
	for _, k := range keys {
		code, ok := t.codes[k]
		if !ok || t.filled[k] {
			continue
		}
		t.filled[k] = true
		t.filledPerCode[code]++
		applied++
	}
	return applied
}

// Progress summarizes completion for the whole board and per code.
type Progress struct {
	Filled  int            `json:"filled"`
	Total   int            `json:"total"`
	Percent float64        `json:"percent"`
	PerCode []CodeProgress `json:"perCode"`
}

// CodeProgress is the completion state of one palette code.
type CodeProgress struct {
	Code   palette.Code `json:"code"`
	Filled int          `json:"filled"`
	Total  int          `json:"total"`
}

// Progress reports how much of the board is filled, overall and broken
// down by palette code in code order. Codes that no cell uses are omitted.
func (t *Tracker) Progress() Progress {
	p := Progress{
		Filled: len(t.filled),
		Total:  len(t.codes),
	}
	if p.Total > 0 {
		p.Percent = 100 * float64(p.Filled) / float64(p.Total)
	}
	for code, total := range t.totalPerCode {
		if total == 0 {
			continue
		}
		p.PerCode = append(p.PerCode, CodeProgress{
			Code:   palette.Code(code),
			Filled: t.filledPerCode[code],
			Total:  total,
		})
	}
	return p
}
