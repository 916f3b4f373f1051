// Package batchinfo recovers structured sample metadata (prime editor, PBS
// and RTT lengths, replicate, drug code) from the batch names emitted by the
// upstream quantification pipeline. Several competing naming conventions are
// in circulation; each is represented as a Layout and they are attempted in a
// fixed priority order.
package batchinfo

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// BatchInfo holds the metadata encoded in one batch name. Editor is null
// when the name follows one of the editor-less conventions; Drug is null
// when no drug code is present or when the code marks an untreated control.
type BatchInfo struct {
	Editor    null.String
	PBS       int
	RTT       int
	Replicate int
	Drug      null.String
}

// ErrUnrecognizedBatchName is returned by Parse when a batch name follows
// none of the known naming conventions. Callers are expected to skip the
// batch with a warning rather than abort.
var ErrUnrecognizedBatchName = errors.New("batch name matches no known layout")

// Parse attempts each Layout in priority order and returns the metadata
// extracted by the first one whose pattern matches. The reserved drug code
// "ctrl" (any casing) denotes an untreated control and is normalized to a
// null Drug.
func Parse(name string) (BatchInfo, error) {
	for _, l := range Layouts {
		groups := l.Pattern.FindStringSubmatch(name)
		if groups == nil {
			continue
		}

		info := l.Extract(groups)
		if info.Drug.Valid && strings.EqualFold(info.Drug.String, "ctrl") {
			info.Drug = null.String{}
		}

		return info, nil
	}

	return BatchInfo{}, fmt.Errorf("%q: %w", name, ErrUnrecognizedBatchName)
}
