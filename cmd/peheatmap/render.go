package main

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

const (
	cellSize     = 64.0
	marginLeft   = 90.0
	marginTop    = 80.0
	marginRight  = 30.0
	marginBottom = 60.0
)

// renderHeatmap draws one key's matrix as a PNG: PBS values down the rows,
// RTT values across the columns, cells colored on the viridis ramp scaled to
// this key's own value range, NaN cells left light gray so "no data" never
// reads as 0%.
func renderHeatmap(outName string, title []string, pbs, rtt []int, cells [][]float64) error {
	width := int(marginLeft + cellSize*float64(len(rtt)) + marginRight)
	height := int(marginTop + cellSize*float64(len(pbs)) + marginBottom)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	lo, hi := valueRange(cells)

	for i := range pbs {
		for j := range rtt {
			x := marginLeft + float64(j)*cellSize
			y := marginTop + float64(i)*cellSize

			v := cells[i][j]
			if math.IsNaN(v) {
				dc.SetRGB255(240, 240, 240)
				dc.DrawRectangle(x, y, cellSize, cellSize)
				dc.Fill()
				continue
			}

			t := 0.0
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			dc.SetRGB(viridis(t))
			dc.DrawRectangle(x, y, cellSize, cellSize)
			dc.Fill()

			// Dark text on the bright end of the ramp, light on the dark end.
			if t > 0.6 {
				dc.SetRGB(0, 0, 0)
			} else {
				dc.SetRGB(1, 1, 1)
			}
			dc.DrawStringAnchored(fmt.Sprintf("%.2f", v), x+cellSize/2, y+cellSize/2, 0.5, 0.5)
		}
	}

	// Grid lines over the cells.
	dc.SetRGB255(200, 200, 200)
	dc.SetLineWidth(1)
	for i := 0; i <= len(pbs); i++ {
		y := marginTop + float64(i)*cellSize
		dc.DrawLine(marginLeft, y, marginLeft+cellSize*float64(len(rtt)), y)
	}
	for j := 0; j <= len(rtt); j++ {
		x := marginLeft + float64(j)*cellSize
		dc.DrawLine(x, marginTop, x, marginTop+cellSize*float64(len(pbs)))
	}
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	for i, p := range pbs {
		y := marginTop + (float64(i)+0.5)*cellSize
		dc.DrawStringAnchored(fmt.Sprintf("%d", p), marginLeft-10, y, 1, 0.5)
	}
	for j, r := range rtt {
		x := marginLeft + (float64(j)+0.5)*cellSize
		dc.DrawStringAnchored(fmt.Sprintf("%d", r), x, marginTop-8, 0.5, 1)
	}

	dc.DrawStringAnchored("RTT Length", marginLeft+cellSize*float64(len(rtt))/2, float64(height)-marginBottom/2, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), marginLeft/3, marginTop+cellSize*float64(len(pbs))/2)
	dc.DrawStringAnchored("PBS Length", marginLeft/3, marginTop+cellSize*float64(len(pbs))/2, 0.5, 0.5)
	dc.Pop()

	for i, line := range title {
		dc.DrawStringAnchored(line, float64(width)/2, 16+float64(i)*16, 0.5, 0.5)
	}

	return dc.SavePNG(outName)
}

func valueRange(cells [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range cells {
		for _, v := range cells[i] {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
