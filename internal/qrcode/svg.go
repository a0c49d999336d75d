package qrcode

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCanvasSize is the rendered edge length in pixels.
const DefaultCanvasSize = 200

const ink = "#1f2937"

// Position marker geometry, expressed as fractions of the canvas edge. The
// three nested squares sit at the top-left, top-right and bottom-left corners,
// drawn over the hash pattern.
const (
	markerOuter    = 0.2
	markerMidInset = 0.03
	markerMid      = 0.14
	markerInInset  = 0.06
	markerInner    = 0.08
)

// RenderSVG renders the grid as an SVG document with a white canvas, dark
// cells and the three fixed corner markers. A non-positive sizePx falls back
// to DefaultCanvasSize.
func RenderSVG(grid Grid, sizePx int) string {
	if sizePx <= 0 {
		sizePx = DefaultCanvasSize
	}
	size := float64(sizePx)
	n := grid.Size()

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, sizePx, sizePx, sizePx, sizePx)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`, sizePx, sizePx)

	if n > 0 {
		cell := size / float64(n)
		for i, row := range grid {
			for j, filled := range row {
				if !filled {
					continue
				}
				fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
					num(float64(j)*cell), num(float64(i)*cell), num(cell), num(cell), ink)
			}
		}
	}

	writeMarker(&b, size, 0, 0)
	writeMarker(&b, size, size*(1-markerOuter), 0)
	writeMarker(&b, size, 0, size*(1-markerOuter))

	b.WriteString(`</svg>`)
	return b.String()
}

// writeMarker draws one nested-square position marker whose outer corner sits
// at (x0, y0). Insets are relative to the canvas, matching the fixed-corner
// layout of a real QR code finder pattern.
func writeMarker(b *strings.Builder, size, x0, y0 float64) {
	square(b, x0, y0, size*markerOuter, ink)
	square(b, x0+size*markerMidInset, y0+size*markerMidInset, size*markerMid, "white")
	square(b, x0+size*markerInInset, y0+size*markerInInset, size*markerInner, ink)
}

func square(b *strings.Builder, x, y, edge float64, fill string) {
	fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		num(x), num(y), num(edge), num(edge), fill)
}

// num formats coordinates without trailing zeros so output stays stable and
// compact.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
