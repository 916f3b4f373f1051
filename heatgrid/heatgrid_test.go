package heatgrid

import (
	"math"
	"testing"

	"github.com/Strugatsky/Prime-editing-tools/runnorm"
)

func measurements() []runnorm.Measurement {
	return []runnorm.Measurement{
		{Editor: "PE2", Drug: "None", PBS: 5, RTT: 10, Replicate: 1, Correct: 10, Incorrect: 1, Scaffold: 0.5, RunID: "r1"},
		{Editor: "PE2", Drug: "None", PBS: 5, RTT: 10, Replicate: 2, Correct: 12, Incorrect: 2, Scaffold: 0.7, RunID: "r1"},
		{Editor: "PE2", Drug: "None", PBS: 5, RTT: 10, Replicate: 3, Correct: 14, Incorrect: 3, Scaffold: 0.9, RunID: "r1"},
		{Editor: "PE2", Drug: "None", PBS: 6, RTT: 12, Replicate: 1, Correct: 20, Incorrect: 4, Scaffold: 1.1, RunID: "r1"},
		{Editor: "PEmax", Drug: "VX-984", PBS: 5, RTT: 10, Replicate: 1, Correct: 30, Incorrect: 5, Scaffold: 1.5, RunID: "r1"},
	}
}

func TestReplicateAveraging(t *testing.T) {
	ix := Build(measurements())

	key := Key{Editor: "PE2", Drug: "None", Metric: MetricCorrect}
	mean, ok := ix.Mean(key, runnorm.Coord{PBS: 5, RTT: 10})
	if !ok {
		t.Fatal("coordinate missing from index")
	}
	if mean != 12.0 {
		t.Errorf("mean = %f, want 12.0", mean)
	}
}

func TestMatrixMarksMissingCellsWithNaN(t *testing.T) {
	ix := Build(measurements())

	key := Key{Editor: "PE2", Drug: "None", Metric: MetricCorrect}
	pbs, rtt, cells := ix.Matrix(key)

	if len(pbs) != 2 || pbs[0] != 5 || pbs[1] != 6 {
		t.Errorf("pbs axis = %v", pbs)
	}
	if len(rtt) != 2 || rtt[0] != 10 || rtt[1] != 12 {
		t.Errorf("rtt axis = %v", rtt)
	}

	if cells[0][0] != 12.0 || cells[1][1] != 20.0 {
		t.Errorf("cells = %v", cells)
	}
	// (5,12) and (6,10) were never measured: NaN, not zero.
	if !math.IsNaN(cells[0][1]) || !math.IsNaN(cells[1][0]) {
		t.Errorf("missing cells not NaN: %v", cells)
	}
}

func TestMatrixSpansAreScopedPerKey(t *testing.T) {
	ix := Build(measurements())

	pbs, rtt, cells := ix.Matrix(Key{Editor: "PEmax", Drug: "VX-984", Metric: MetricScaffold})
	if len(pbs) != 1 || pbs[0] != 5 || len(rtt) != 1 || rtt[0] != 10 {
		t.Errorf("axes = %v / %v", pbs, rtt)
	}
	if cells[0][0] != 1.5 {
		t.Errorf("cells = %v", cells)
	}
}

func TestMatrixIdempotence(t *testing.T) {
	ix := Build(measurements())
	key := Key{Editor: "PE2", Drug: "None", Metric: MetricIncorrect}

	_, _, first := ix.Matrix(key)
	_, _, second := ix.Matrix(key)

	if len(first) != len(second) {
		t.Fatal("shape differs between materializations")
	}
	for i := range first {
		for j := range first[i] {
			// Compare bit patterns so NaN cells count as identical too.
			if math.Float64bits(first[i][j]) != math.Float64bits(second[i][j]) {
				t.Errorf("cell (%d,%d) differs: %v vs %v", i, j, first[i][j], second[i][j])
			}
		}
	}
}

func TestEmptyKey(t *testing.T) {
	ix := Build(nil)
	if pbs, rtt, cells := ix.Matrix(Key{Editor: "PE2"}); pbs != nil || rtt != nil || cells != nil {
		t.Error("expected empty materialization for unknown key")
	}
	if _, ok := ix.Mean(Key{Editor: "PE2"}, runnorm.Coord{}); ok {
		t.Error("unknown key reported a mean")
	}
}
