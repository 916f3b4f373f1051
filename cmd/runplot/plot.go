package main

import (
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Strugatsky/Prime-editing-tools/heatgrid"
	"github.com/Strugatsky/Prime-editing-tools/pedb"
	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type sample struct {
	PBS, RTT int
}

func (s sample) Name() string {
	return fmt.Sprintf("P%dR%d", s.PBS, s.RTT)
}

func metricValue(p pedb.JoinedPoint, metric string) float64 {
	switch metric {
	case heatgrid.MetricIncorrect:
		return p.IncorrectEdits
	case heatgrid.MetricScaffold:
		return p.ScaffoldIncorporated
	default:
		return p.CorrectEdits
	}
}

// plotEditor renders one metric of one prime editor: per-sample replicate
// means as a line, individual replicates as dots around each sample's x
// position.
func plotEditor(outDir, title, metric, editor string, points []pedb.JoinedPoint) error {
	values := make(map[sample][]float64)
	for _, p := range points {
		if p.PrimeEditor != editor {
			continue
		}
		s := sample{PBS: p.PBS, RTT: p.RTT}
		values[s] = append(values[s], metricValue(p, metric))
	}
	if len(values) == 0 {
		return nil
	}

	samples := make([]sample, 0, len(values))
	for s := range values {
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].PBS != samples[j].PBS {
			return samples[i].PBS < samples[j].PBS
		}
		return samples[i].RTT < samples[j].RTT
	})

	col := editorColor(editor)

	meanX := make([]float64, len(samples))
	meanY := make([]float64, len(samples))
	var dotX, dotY []float64
	ticks := make([]chart.Tick, 0, len(samples))

	for i, s := range samples {
		mean, err := stats.Mean(values[s])
		if err != nil {
			return err
		}
		meanX[i] = float64(i)
		meanY[i] = mean
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: s.Name()})

		// Small deterministic spread so overlapping replicates stay visible.
		n := len(values[s])
		for k, v := range values[s] {
			dotX = append(dotX, float64(i)+(float64(k)-float64(n-1)/2)*0.08)
			dotY = append(dotY, v)
		}
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1000,
		Height: 600,
		XAxis: chart.XAxis{
			Name:  "Sample",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(samples)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name: metricTitle(metric) + " (%)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    editor,
				XValues: meanX,
				YValues: meanY,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: col,
					DotWidth:    5,
					DotColor:    col,
				},
			},
			chart.ContinuousSeries{
				XValues: dotX,
				YValues: dotY,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColor:    col.WithAlpha(90),
				},
			},
		},
	}

	outName := uniquePath(outDir, sanitize(title))
	f, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return err
	}

	log.Printf("Saved plot to %s", outName)
	return nil
}

// editorColor derives a stable color from the editor name so the same editor
// looks the same across plots and sessions.
func editorColor(editor string) drawing.Color {
	h := fnv.New32a()
	h.Write([]byte(editor))

	r, g, b := hsvToRGB(float64(h.Sum32()%360)/360, 0.7, 0.9)
	return drawing.Color{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func sanitize(title string) string {
	r := strings.NewReplacer(" ", "_", "-", "_", "/", "_")
	return r.Replace(title)
}

// uniquePath appends a counter rather than overwriting earlier plots.
func uniquePath(dir, base string) string {
	path := filepath.Join(dir, base+".png")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.png", base, counter))
	}
}
