// Package heatgrid aggregates measurements into replicate-averaged values
// addressable by (prime editor, drug, metric) and PBS/RTT coordinate, and
// materializes them as dense 2-D matrices for heatmap rendering.
package heatgrid

import (
	"math"
	"sort"

	"github.com/Strugatsky/Prime-editing-tools/runnorm"
	"github.com/montanaflynn/stats"
)

// Metric names, matching the data_points column names.
const (
	MetricCorrect   = "correct_edits"
	MetricIncorrect = "incorrect_edits"
	MetricScaffold  = "scaffold_incorporated"
)

// Metrics lists all metric names in display order.
var Metrics = []string{MetricCorrect, MetricIncorrect, MetricScaffold}

// Key addresses one aggregated series: one metric of one editor under one
// drug condition. A single flat composite key keeps uniqueness and
// missing-cell semantics explicit, instead of nesting maps per dimension.
type Key struct {
	Editor string
	Drug   string
	Metric string
}

// Index holds replicate-averaged values per key and coordinate.
type Index struct {
	values map[Key]map[runnorm.Coord][]float64
	means  map[Key]map[runnorm.Coord]float64
}

// Build collects every metric value of every measurement under its composite
// key and coordinate, then averages across replicates. Duplicate
// measurements for the same replicate are not rejected; they simply
// contribute additional values to the average.
func Build(ms []runnorm.Measurement) *Index {
	ix := &Index{
		values: make(map[Key]map[runnorm.Coord][]float64),
		means:  make(map[Key]map[runnorm.Coord]float64),
	}

	for _, m := range ms {
		c := runnorm.Coord{PBS: m.PBS, RTT: m.RTT}
		ix.add(Key{Editor: m.Editor, Drug: m.Drug, Metric: MetricCorrect}, c, m.Correct)
		ix.add(Key{Editor: m.Editor, Drug: m.Drug, Metric: MetricIncorrect}, c, m.Incorrect)
		ix.add(Key{Editor: m.Editor, Drug: m.Drug, Metric: MetricScaffold}, c, m.Scaffold)
	}

	for key, coords := range ix.values {
		ix.means[key] = make(map[runnorm.Coord]float64, len(coords))
		for c, vals := range coords {
			mean, err := stats.Mean(vals)
			if err != nil {
				continue
			}
			ix.means[key][c] = mean
		}
	}

	return ix
}

func (ix *Index) add(k Key, c runnorm.Coord, v float64) {
	if ix.values[k] == nil {
		ix.values[k] = make(map[runnorm.Coord][]float64)
	}
	ix.values[k][c] = append(ix.values[k][c], v)
}

// Keys returns every populated key, sorted by editor, drug, then metric.
func (ix *Index) Keys() []Key {
	keys := make([]Key, 0, len(ix.means))
	for k := range ix.means {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Editor != keys[j].Editor {
			return keys[i].Editor < keys[j].Editor
		}
		if keys[i].Drug != keys[j].Drug {
			return keys[i].Drug < keys[j].Drug
		}
		return keys[i].Metric < keys[j].Metric
	})
	return keys
}

// Mean returns the replicate-averaged value at one coordinate of one key.
func (ix *Index) Mean(k Key, c runnorm.Coord) (float64, bool) {
	v, ok := ix.means[k][c]
	return v, ok
}

// Matrix materializes one key's values as a dense matrix. Rows follow the
// sorted distinct PBS values observed for the key, columns the sorted
// distinct RTT values. Cells with no measurement carry NaN, never zero, so
// renderers can distinguish "no data" from "0%".
func (ix *Index) Matrix(k Key) (pbs []int, rtt []int, cells [][]float64) {
	coords := ix.means[k]
	if len(coords) == 0 {
		return nil, nil, nil
	}

	pbsSet := make(map[int]bool)
	rttSet := make(map[int]bool)
	for c := range coords {
		pbsSet[c.PBS] = true
		rttSet[c.RTT] = true
	}
	for v := range pbsSet {
		pbs = append(pbs, v)
	}
	for v := range rttSet {
		rtt = append(rtt, v)
	}
	sort.Ints(pbs)
	sort.Ints(rtt)

	cells = make([][]float64, len(pbs))
	for i, p := range pbs {
		cells[i] = make([]float64, len(rtt))
		for j, r := range rtt {
			if v, ok := coords[runnorm.Coord{PBS: p, RTT: r}]; ok {
				cells[i][j] = v
			} else {
				cells[i][j] = math.NaN()
			}
		}
	}

	return pbs, rtt, cells
}
