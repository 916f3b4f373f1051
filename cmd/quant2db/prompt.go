package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Strugatsky/Prime-editing-tools/pedb"
)

var stdin = bufio.NewReader(os.Stdin)

func promptLine(msg string) (string, error) {
	fmt.Print(msg)

	line, err := stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptEditors implements batchinfo.EditorResolver: one editor applied
// uniformly, or "different" for a per-batch prompt.
func promptEditors(missing []string) (map[string]string, error) {
	fmt.Printf("\nFound %d batches with missing prime editor information.\n", len(missing))

	resp, err := promptLine("Enter prime editor name for these batches (e.g., PE2, PEmax), or 'different' for individual prompts: ")
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(missing))

	if strings.EqualFold(resp, "different") {
		for _, name := range missing {
			editor, err := promptLine(fmt.Sprintf("Enter prime editor name for batch %q: ", name))
			if err != nil {
				return nil, err
			}
			out[name] = editor
		}
		return out, nil
	}

	for _, name := range missing {
		out[name] = resp
	}
	return out, nil
}

func chooseExperiment(exps []pedb.Experiment) (pedb.Experiment, error) {
	fmt.Println("Available experiments:")
	for i, e := range exps {
		fmt.Printf("%d. %s (%s) - %s\n", i+1, e.Name, e.Date.String, e.Variant.String)
	}

	for {
		resp, err := promptLine(fmt.Sprintf("\nSelect an experiment (1-%d): ", len(exps)))
		if err != nil {
			return pedb.Experiment{}, err
		}

		n, err := strconv.Atoi(resp)
		if err != nil || n < 1 || n > len(exps) {
			fmt.Println("Invalid selection. Please try again.")
			continue
		}

		return exps[n-1], nil
	}
}

// promptDrug implements pedb.DrugChooser: pick an existing drug for the code
// found in a batch name, or capture a new one.
func promptDrug(code string, existing []pedb.Drug) (pedb.DrugChoice, error) {
	fmt.Printf("\nFound drug code %q in batch name.\n", code)
	fmt.Println("Available drugs:")
	fmt.Println("0. Create new drug")
	for i, d := range existing {
		fmt.Printf("%d. %s\n", i+1, d.Name)
	}

	for {
		resp, err := promptLine(fmt.Sprintf("\nSelect a drug or create new (0-%d): ", len(existing)))
		if err != nil {
			return pedb.DrugChoice{}, err
		}

		n, err := strconv.Atoi(resp)
		if err != nil || n < 0 || n > len(existing) {
			fmt.Println("Invalid selection. Please try again.")
			continue
		}

		if n == 0 {
			name, err := promptLine(fmt.Sprintf("Enter name for drug %q: ", code))
			if err != nil {
				return pedb.DrugChoice{}, err
			}
			desc, err := promptLine("Enter description (optional): ")
			if err != nil {
				return pedb.DrugChoice{}, err
			}
			return pedb.DrugChoice{Name: name, Description: desc}, nil
		}

		return pedb.DrugChoice{DrugID: existing[n-1].ID}, nil
	}
}
