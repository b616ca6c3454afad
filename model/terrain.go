package model

// PixelMap is a per-cell bit grid such as creep coverage. Cells are stored
// row-major with y as the row: Data[y*Width + x]. Any non-zero byte is set.
type PixelMap struct {
	Width  int
	Height int
	Data   []byte
}

// NewPixelMap allocates an empty grid.
func NewPixelMap(width, height int) *PixelMap {
	return &PixelMap{Width: width, Height: height, Data: make([]byte, width*height)}
}

// At returns the raw cell value at (x, y).
// Returns 0 for out-of-bounds coordinates or a nil map.
func (m *PixelMap) At(x, y int) byte {
	if m == nil || x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	i := y*m.Width + x
	if i >= len(m.Data) {
		return 0
	}
	return m.Data[i]
}

// Set marks the cell at (x, y). Out-of-bounds writes are ignored.
func (m *PixelMap) Set(x, y int, v bool) {
	if m == nil || x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	if v {
		m.Data[y*m.Width+x] = 1
	} else {
		m.Data[y*m.Width+x] = 0
	}
}

// IsSet reports whether the cell containing p is set.
func (m *PixelMap) IsSet(p Point2) bool {
	x, y := Cell(p)
	return m.At(x, y) != 0
}

// Visibility of a single grid cell, as reported by the game.
type Visibility byte

const (
	Hidden     Visibility = 0 // never seen
	Fogged     Visibility = 1 // seen before, not in sight now
	Visible    Visibility = 2 // in sight
	FullHidden Visibility = 3 // outside the playable area
)

func (v Visibility) IsVisible() bool { return v == Visible }
func (v Visibility) IsFogged() bool  { return v == Fogged }
func (v Visibility) IsExplored() bool {
	return v == Visible || v == Fogged
}

// VisibilityMap uses the same layout as PixelMap.
type VisibilityMap struct {
	Width  int
	Height int
	Data   []Visibility
}

// NewVisibilityMap allocates a fully hidden grid.
func NewVisibilityMap(width, height int) *VisibilityMap {
	return &VisibilityMap{Width: width, Height: height, Data: make([]Visibility, width*height)}
}

// At returns the visibility at (x, y).
// Returns Hidden for out-of-bounds coordinates or a nil map.
func (m *VisibilityMap) At(x, y int) Visibility {
	if m == nil || x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return Hidden
	}
	i := y*m.Width + x
	if i >= len(m.Data) {
		return Hidden
	}
	return m.Data[i]
}

// Set writes the visibility at (x, y). Out-of-bounds writes are ignored.
func (m *VisibilityMap) Set(x, y int, v Visibility) {
	if m == nil || x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Data[y*m.Width+x] = v
}

// AtPoint returns the visibility of the cell containing p.
func (m *VisibilityMap) AtPoint(p Point2) Visibility {
	x, y := Cell(p)
	return m.At(x, y)
}
