package quant

import (
	"errors"
	"math"
	"testing"
)

func threeRows() []AmpliconRow {
	return []AmpliconRow{
		{Batch: "b", Amplicon: "Edited", Unmodified: 80, Modified: 10, Discarded: 10},
		{Batch: "b", Amplicon: AmpliconPrimeEdited, Unmodified: 5, Modified: 3, Discarded: 2},
		{Batch: "b", Amplicon: AmpliconScaffold, Unmodified: 2, Modified: 1, Discarded: 7},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute(t *testing.T) {
	eff, err := Compute(threeRows())
	if err != nil {
		t.Error(err)
	}

	// total = 120 reads across all three amplicons
	if !almostEqual(eff.Correct, 100*5.0/120) {
		t.Errorf("Correct = %f", eff.Correct)
	}
	if !almostEqual(eff.Incorrect, 100*3.0/120) {
		t.Errorf("Incorrect = %f", eff.Incorrect)
	}
	if !almostEqual(eff.Scaffold, 100*1.0/120) {
		t.Errorf("Scaffold = %f", eff.Scaffold)
	}
}

func TestComputeRowCount(t *testing.T) {
	if _, err := Compute(threeRows()[:2]); !errors.Is(err, ErrBatchShape) {
		t.Errorf("expected ErrBatchShape, got %v", err)
	}
}

func TestComputeCategoryCardinality(t *testing.T) {
	rows := threeRows()
	rows[0].Amplicon = AmpliconPrimeEdited
	if _, err := Compute(rows); !errors.Is(err, ErrBatchShape) {
		t.Errorf("expected ErrBatchShape for duplicate Prime-edited, got %v", err)
	}

	rows = threeRows()
	rows[2].Amplicon = "Edited"
	if _, err := Compute(rows); !errors.Is(err, ErrBatchShape) {
		t.Errorf("expected ErrBatchShape for missing Scaffold-incorporated, got %v", err)
	}
}

func TestComputeZeroReads(t *testing.T) {
	rows := []AmpliconRow{
		{Batch: "b", Amplicon: "Edited"},
		{Batch: "b", Amplicon: AmpliconPrimeEdited},
		{Batch: "b", Amplicon: AmpliconScaffold},
	}
	if _, err := Compute(rows); !errors.Is(err, ErrNoReads) {
		t.Errorf("expected ErrNoReads, got %v", err)
	}
}

func TestBatchesPreserveOrder(t *testing.T) {
	rows := []AmpliconRow{
		{Batch: "b2"}, {Batch: "b1"}, {Batch: "b2"}, {Batch: "b1"}, {Batch: "b3"},
	}
	order, grouped := Batches(rows)
	if len(order) != 3 || order[0] != "b2" || order[1] != "b1" || order[2] != "b3" {
		t.Errorf("order = %v", order)
	}
	if len(grouped["b2"]) != 2 || len(grouped["b3"]) != 1 {
		t.Errorf("grouped = %v", grouped)
	}
}
