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

// chooseRuns lets the operator pick a subset of runs. Anything unparseable
// falls back to all runs rather than aborting.
func chooseRuns(runs []pedb.Run) ([]pedb.Run, error) {
	fmt.Println("\nAvailable runs:")
	for i, r := range runs {
		fmt.Printf("%d. %s\n", i+1, r.Name)
	}

	resp, err := promptLine("\nEnter run numbers to include (comma-separated, or 'all' for all runs): ")
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(resp, "all") || resp == "" {
		return runs, nil
	}

	var selected []pedb.Run
	for _, field := range strings.Split(resp, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			fmt.Println("Invalid selection. Using all runs.")
			return runs, nil
		}
		if n >= 1 && n <= len(runs) {
			selected = append(selected, runs[n-1])
		}
	}

	if len(selected) == 0 {
		fmt.Println("No valid runs selected. Using all runs.")
		return runs, nil
	}

	return selected, nil
}
