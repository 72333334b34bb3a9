package grid

// squareSites lays out the axis-aligned grid. The final column and row are
// kept even when the image dimensions are not multiples of the cell size,
// so their footprints overhang the right and bottom edges.
func squareSites(width, height, size int) []Site {
	cols := (width + size - 1) / size
	rows := (height + size - 1) / size

	s := float64(size)
	sites := make([]Site, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sites = append(sites, Site{
				X:  x,
				Y:  y,
				CX: (float64(x) + 0.5) * s,
				CY: (float64(y) + 0.5) * s,
			})
		}
	}
	return sites
}

func squareContains(site Site, size int, px, py float64) bool {
	s := float64(size)
	x0 := float64(site.X) * s
	y0 := float64(site.Y) * s
	return px >= x0 && px < x0+s && py >= y0 && py < y0+s
}

func squareBounds(site Site, size int) (minX, minY, maxX, maxY float64) {
	s := float64(size)
	minX = float64(site.X) * s
	minY = float64(site.Y) * s
	return minX, minY, minX + s, minY + s
}
