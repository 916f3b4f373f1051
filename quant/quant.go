// Package quant turns raw amplicon read counts into editing-efficiency
// percentages. Each physical sample ("batch") is quantified as three
// amplicon rows: a catch-all edited amplicon, the Prime-edited amplicon, and
// the Scaffold-incorporated amplicon.
package quant

import (
	"errors"
	"fmt"
)

// Amplicon category labels produced by the upstream classifier.
const (
	AmpliconPrimeEdited = "Prime-edited"
	AmpliconScaffold    = "Scaffold-incorporated"
)

// AmpliconRow is one line of the quantification table: read counts for one
// amplicon category of one batch.
type AmpliconRow struct {
	Batch      string `csv:"Batch"`
	Amplicon   string `csv:"Amplicon"`
	Unmodified int    `csv:"Unmodified"`
	Modified   int    `csv:"Modified"`
	Discarded  int    `csv:"Discarded"`
}

// Efficiency holds the three editing-outcome percentages for one batch.
type Efficiency struct {
	Correct   float64
	Incorrect float64
	Scaffold  float64
}

var (
	// ErrBatchShape flags a batch whose rows do not form the expected
	// 3-amplicon structure. The batch is skipped; the run continues.
	ErrBatchShape = errors.New("unexpected amplicon row structure")

	// ErrNoReads flags a batch whose amplicons carry zero reads in total.
	ErrNoReads = errors.New("batch has no reads")
)

// Batches groups rows by batch name, returning the names in first-seen
// order so downstream processing (and any warnings it prints) follows the
// input file.
func Batches(rows []AmpliconRow) ([]string, map[string][]AmpliconRow) {
	var order []string
	grouped := make(map[string][]AmpliconRow)

	for _, row := range rows {
		if _, seen := grouped[row.Batch]; !seen {
			order = append(order, row.Batch)
		}
		grouped[row.Batch] = append(grouped[row.Batch], row)
	}

	return order, grouped
}

// Compute validates one batch's rows and derives its efficiencies. The
// denominator is the total read count over all three amplicons.
//
// The upstream classifier reports correctly prime-edited reads in the
// Unmodified column of the Prime-edited amplicon (they match that amplicon
// exactly), and its Modified column holds reads that edited imperfectly.
// That asymmetry is intentional and must not be "fixed" here.
func Compute(rows []AmpliconRow) (Efficiency, error) {
	if len(rows) != 3 {
		return Efficiency{}, fmt.Errorf("expected 3 amplicon rows, found %d: %w", len(rows), ErrBatchShape)
	}

	var primeEdited, scaffold *AmpliconRow
	for i := range rows {
		switch rows[i].Amplicon {
		case AmpliconPrimeEdited:
			if primeEdited != nil {
				return Efficiency{}, fmt.Errorf("more than one %s row: %w", AmpliconPrimeEdited, ErrBatchShape)
			}
			primeEdited = &rows[i]
		case AmpliconScaffold:
			if scaffold != nil {
				return Efficiency{}, fmt.Errorf("more than one %s row: %w", AmpliconScaffold, ErrBatchShape)
			}
			scaffold = &rows[i]
		}
	}

	if primeEdited == nil {
		return Efficiency{}, fmt.Errorf("no %s row: %w", AmpliconPrimeEdited, ErrBatchShape)
	}
	if scaffold == nil {
		return Efficiency{}, fmt.Errorf("no %s row: %w", AmpliconScaffold, ErrBatchShape)
	}

	total := 0
	for _, row := range rows {
		total += row.Unmodified + row.Modified + row.Discarded
	}
	if total == 0 {
		return Efficiency{}, ErrNoReads
	}

	return Efficiency{
		Correct:   100 * float64(primeEdited.Unmodified) / float64(total),
		Incorrect: 100 * float64(primeEdited.Modified) / float64(total),
		Scaffold:  100 * float64(scaffold.Modified) / float64(total),
	}, nil
}
