package runnorm

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeTwoRuns(t *testing.T) {
	// Shared reference coordinate (7,7): run1 averages 40, run2 averages 50.
	ms := []Measurement{
		{Editor: "PE2", Drug: "None", PBS: 7, RTT: 7, Replicate: 1, Correct: 38, Incorrect: 4, Scaffold: 2, RunID: "run1"},
		{Editor: "PE2", Drug: "None", PBS: 7, RTT: 7, Replicate: 2, Correct: 42, Incorrect: 4, Scaffold: 2, RunID: "run1"},
		{Editor: "PE2", Drug: "None", PBS: 9, RTT: 12, Replicate: 1, Correct: 20, Incorrect: 1, Scaffold: 1, RunID: "run1"},
		{Editor: "PE2", Drug: "None", PBS: 7, RTT: 7, Replicate: 1, Correct: 50, Incorrect: 5, Scaffold: 3, RunID: "run2"},
		{Editor: "PE2", Drug: "None", PBS: 11, RTT: 14, Replicate: 1, Correct: 30, Incorrect: 2, Scaffold: 1, RunID: "run2"},
	}

	out, ref, err := Normalize(ms, []string{"run1", "run2"})
	if err != nil {
		t.Error(err)
	}

	if ref.Coord != (Coord{PBS: 7, RTT: 7}) {
		t.Errorf("reference = %+v", ref.Coord)
	}
	if !almostEqual(ref.RunFactors["run1"], 40) || !almostEqual(ref.RunFactors["run2"], 50) {
		t.Errorf("run factors = %v", ref.RunFactors)
	}
	if !almostEqual(ref.Global, 45) {
		t.Errorf("global factor = %f", ref.Global)
	}

	// run1 scales by 45/40, run2 by 45/50, across every metric.
	if !almostEqual(out[2].Correct, 20*45.0/40) || !almostEqual(out[2].Scaffold, 1*45.0/40) {
		t.Errorf("run1 measurement = %+v", out[2])
	}
	if !almostEqual(out[4].Correct, 30*45.0/50) || !almostEqual(out[4].Incorrect, 2*45.0/50) {
		t.Errorf("run2 measurement = %+v", out[4])
	}

	// After scaling, both runs hit the global mean at the reference.
	run1Ref := (out[0].Correct + out[1].Correct) / 2
	if !almostEqual(run1Ref, 45) || !almostEqual(out[3].Correct, 45) {
		t.Errorf("reference means after scaling: run1=%f run2=%f", run1Ref, out[3].Correct)
	}

	// Inputs must not be mutated.
	if !almostEqual(ms[2].Correct, 20) {
		t.Errorf("input mutated: %+v", ms[2])
	}
}

func TestNormalizeReferenceOrderIsDeterministic(t *testing.T) {
	// Two candidates, (5,9) and (5,8): the lower (PBS, RTT) pair wins.
	ms := []Measurement{
		{PBS: 5, RTT: 9, Correct: 10, RunID: "a"},
		{PBS: 5, RTT: 9, Correct: 10, RunID: "b"},
		{PBS: 5, RTT: 8, Correct: 10, RunID: "a"},
		{PBS: 5, RTT: 8, Correct: 10, RunID: "b"},
	}

	_, ref, err := Normalize(ms, []string{"a", "b"})
	if err != nil {
		t.Error(err)
	}
	if ref.Coord != (Coord{PBS: 5, RTT: 8}) {
		t.Errorf("reference = %+v", ref.Coord)
	}
}

func TestNormalizeNoCommonCoordinate(t *testing.T) {
	ms := []Measurement{
		{PBS: 5, RTT: 9, Correct: 10, RunID: "a"},
		{PBS: 6, RTT: 9, Correct: 20, RunID: "b"},
	}

	out, ref, err := Normalize(ms, []string{"a", "b"})
	if !errors.Is(err, ErrNoCommonCoordinate) {
		t.Errorf("expected ErrNoCommonCoordinate, got %v", err)
	}
	if ref != nil {
		t.Errorf("reference = %+v", ref)
	}
	for i := range out {
		if out[i] != ms[i] {
			t.Errorf("values changed without normalization: %+v", out[i])
		}
	}
}

func TestNormalizeZeroFactorRunLeftUnscaled(t *testing.T) {
	ms := []Measurement{
		{PBS: 7, RTT: 7, Correct: 0, RunID: "a"},
		{PBS: 7, RTT: 7, Correct: 30, RunID: "b"},
		{PBS: 8, RTT: 9, Correct: 12, RunID: "a"},
	}

	out, ref, err := Normalize(ms, []string{"a", "b"})
	if err != nil {
		t.Error(err)
	}
	if !almostEqual(ref.Global, 15) {
		t.Errorf("global = %f", ref.Global)
	}
	// Run "a" has factor 0 and must pass through unscaled.
	if !almostEqual(out[2].Correct, 12) {
		t.Errorf("zero-factor run was scaled: %+v", out[2])
	}
	// Run "b" still scales normally.
	if !almostEqual(out[1].Correct, 30*15.0/30) {
		t.Errorf("run b = %+v", out[1])
	}
}
