package convert

import (
	"fmt"

	"github.com/ironsheep/paintbynum-mcp/internal/grid"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Result is the complete outcome of one conversion: the tessellation
// parameters, the palette, and every cell with its assigned code.
//
// A Result is immutable once built and safe to share between readers. It
// carries no timestamps or identifiers, so converting the same bytes with
// the same Config marshals to byte-identical JSON.
type Result struct {
	GridType grid.Type        `json:"gridType"`
	CellSize int              `json:"cellSize"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Dithered bool             `json:"dithered"`
	Palette  *palette.Palette `json:"palette"`
	Cells    []grid.Cell      `json:"cells"`
}

// CellCount returns how many cells the conversion produced.
func (r *Result) CellCount() int {
	return len(r.Cells)
}

// Geometry rebuilds the tessellation geometry the cells were laid out
// with. Because tessellation is a pure function of the stored parameters,
// the rebuilt geometry matches the cells exactly, which is how a Result
// loaded from storage becomes renderable and hit-testable again.
func (r *Result) Geometry() (*grid.Geometry, error) {
	return grid.NewGeometry(r.GridType, r.Width, r.Height, r.CellSize)
}

// Validate checks internal consistency, which guards against hand-edited
// or truncated stored results.
func (r *Result) Validate() error {
	if _, err := grid.ParseType(string(r.GridType)); err != nil {
		return err
	}
	if r.CellSize <= 0 {
		return fmt.Errorf("non-positive cell size %d", r.CellSize)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("non-positive dimensions %dx%d", r.Width, r.Height)
	}
	if r.Palette == nil || r.Palette.Len() == 0 {
		return fmt.Errorf("empty palette")
	}
	for i, c := range r.Cells {
		if int(c.Code) >= r.Palette.Len() {
			return fmt.Errorf("cell %d references code %d outside palette of %d", i, c.Code, r.Palette.Len())
		}
		if c.X < 0 || c.Y < 0 {
			return fmt.Errorf("cell %d has negative lattice coordinates (%d,%d)", i, c.X, c.Y)
		}
	}
	return nil
}
