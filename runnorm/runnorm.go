// Package runnorm rescales editing efficiencies across sequencing runs so
// that runs with different overall efficiency (transfection quality, cell
// state, and so on) become comparable. A PBS/RTT combination present in
// every run serves as the shared control: each run is scaled so that its
// mean correct-edit percentage at that combination meets the cross-run mean.
package runnorm

import (
	"errors"
	"sort"

	"github.com/montanaflynn/stats"
)

// Measurement is one replicate's worth of editing efficiencies, fully
// resolved (editor and drug known, coordinates attached). Measurements are
// treated as immutable; Normalize returns rescaled copies.
type Measurement struct {
	Editor    string
	Drug      string // drug name as stored, "None" when untreated
	PBS       int
	RTT       int
	Replicate int
	Correct   float64
	Incorrect float64
	Scaffold  float64
	RunID     string
}

// Coord identifies one tested pegRNA design: its primer-binding-site length
// and reverse-transcriptase-template length.
type Coord struct {
	PBS int
	RTT int
}

// Reference describes how a normalization was performed.
type Reference struct {
	Coord      Coord
	RunFactors map[string]float64
	Global     float64
}

// ErrNoCommonCoordinate means no PBS/RTT combination appears in every run of
// the set, so there is nothing to calibrate against. Callers should warn and
// proceed with raw values.
var ErrNoCommonCoordinate = errors.New("no PBS/RTT combination is shared by every run")

// Normalize rescales measurements from the given runs onto a common scale.
//
// The reference coordinate is the first candidate in ascending (PBS, RTT)
// order among the combinations present in all runs; any coordinate shared by
// every run works equally well, the ordering just makes the choice
// deterministic. Each run's factor is the mean Correct value at the
// reference across its replicates, and the global factor is the mean of the
// run factors. Every metric of a measurement in run R is multiplied by
// global/factor(R); a run whose factor is zero is left unscaled.
//
// When no common coordinate exists the input slice is returned as-is along
// with ErrNoCommonCoordinate.
func Normalize(ms []Measurement, runIDs []string) ([]Measurement, *Reference, error) {
	runSet := make(map[string]bool, len(runIDs))
	for _, id := range runIDs {
		runSet[id] = true
	}

	coordRuns := make(map[Coord]map[string]bool)
	for _, m := range ms {
		if !runSet[m.RunID] {
			continue
		}
		c := Coord{PBS: m.PBS, RTT: m.RTT}
		if coordRuns[c] == nil {
			coordRuns[c] = make(map[string]bool)
		}
		coordRuns[c][m.RunID] = true
	}

	var candidates []Coord
	for c, runs := range coordRuns {
		if len(runs) == len(runSet) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ms, nil, ErrNoCommonCoordinate
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].PBS != candidates[j].PBS {
			return candidates[i].PBS < candidates[j].PBS
		}
		return candidates[i].RTT < candidates[j].RTT
	})
	ref := candidates[0]

	refValues := make(map[string][]float64)
	for _, m := range ms {
		if runSet[m.RunID] && m.PBS == ref.PBS && m.RTT == ref.RTT {
			refValues[m.RunID] = append(refValues[m.RunID], m.Correct)
		}
	}

	factors := make(map[string]float64, len(refValues))
	var factorList []float64
	for runID, values := range refValues {
		f, err := stats.Mean(values)
		if err != nil {
			continue
		}
		factors[runID] = f
		factorList = append(factorList, f)
	}

	global, err := stats.Mean(factorList)
	if err != nil {
		return ms, nil, ErrNoCommonCoordinate
	}

	out := make([]Measurement, len(ms))
	copy(out, ms)
	for i := range out {
		f, ok := factors[out[i].RunID]
		if !ok || f <= 0 {
			continue
		}
		scale := global / f
		out[i].Correct *= scale
		out[i].Incorrect *= scale
		out[i].Scaffold *= scale
	}

	return out, &Reference{Coord: ref, RunFactors: factors, Global: global}, nil
}
