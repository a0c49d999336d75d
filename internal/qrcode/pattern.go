// Package qrcode generates the deterministic scannable-looking pattern encoded
// on a profile card. The pattern is a decorative hash grid, not a
// standards-compliant QR code: two payloads may collide visually and that is
// acceptable, since the canonical payload string travels out of band.
package qrcode

// DefaultGridSize matches the 21-module layout of a version 1 QR code.
const DefaultGridSize = 21

// Grid is a square matrix of cells; true marks a filled cell.
type Grid [][]bool

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// Generate derives a gridSize x gridSize pattern from the payload. The same
// payload and size always produce an identical grid. A non-positive gridSize
// falls back to DefaultGridSize. Any payload is valid, including the empty
// string.
func Generate(payload string, gridSize int) Grid {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}

	h := int64(checksum(payload))
	grid := make(Grid, gridSize)
	for i := range grid {
		row := make([]bool, gridSize)
		for j := range row {
			idx := int64(i*gridSize + j)
			row[j] = (h+idx)%3 == 0
		}
		grid[i] = row
	}
	return grid
}

// checksum is the classic polynomial rolling hash over the payload's code
// points. The accumulator is a 32-bit signed integer on purpose: the wraparound
// on overflow is part of the pattern contract, so identical payloads render
// identically everywhere.
func checksum(payload string) int32 {
	var h int32
	for _, c := range payload {
		h = h*31 + int32(c)
	}
	return h
}
