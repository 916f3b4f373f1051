package batchinfo

import (
	"regexp"
	"strconv"

	"gopkg.in/guregu/null.v3"
)

// Layout couples one batch naming convention with the extraction of its
// capture groups.
type Layout struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(groups []string) BatchInfo
}

// Layouts are tried in order; the first whose pattern matches wins, so more
// specific conventions must precede the editor-less fallbacks. The patterns
// are anchored at the start only, except for the trailing drug-code layout
// which must consume the whole name to avoid swallowing a replicate suffix.
var Layouts = []Layout{
	{
		Name:    "editor-pbs-rtt-rep",
		Pattern: regexp.MustCompile(`^[a-zA-Z]+(PE\w+)_P(\d+)_R(\d+)_[Rr]ep(\d+)`),
		Extract: func(g []string) BatchInfo {
			return BatchInfo{
				Editor:    null.StringFrom(g[1]),
				PBS:       toInt(g[2]),
				RTT:       toInt(g[3]),
				Replicate: toInt(g[4]),
			}
		},
	},
	{
		Name:    "editor-rtt-pbs-rep",
		Pattern: regexp.MustCompile(`^[a-zA-Z]+(PE\w+)_R(\d+)_P(\d+)_[Rr]ep(\d+)`),
		Extract: func(g []string) BatchInfo {
			return BatchInfo{
				Editor:    null.StringFrom(g[1]),
				RTT:       toInt(g[2]),
				PBS:       toInt(g[3]),
				Replicate: toInt(g[4]),
			}
		},
	},
	{
		Name:    "pbs-rtt-rep",
		Pattern: regexp.MustCompile(`^[a-zA-Z]+_P(\d+)_R(\d+)_[Rr]ep(\d+)`),
		Extract: func(g []string) BatchInfo {
			return BatchInfo{
				PBS:       toInt(g[1]),
				RTT:       toInt(g[2]),
				Replicate: toInt(g[3]),
			}
		},
	},
	{
		Name:    "rtt-pbs-rep",
		Pattern: regexp.MustCompile(`^[a-zA-Z]+_R(\d+)_P(\d+)_[Rr]ep(\d+)`),
		Extract: func(g []string) BatchInfo {
			return BatchInfo{
				RTT:       toInt(g[1]),
				PBS:       toInt(g[2]),
				Replicate: toInt(g[3]),
			}
		},
	},
	{
		Name:    "editor-pbsrtt-drug-rep",
		Pattern: regexp.MustCompile(`^[a-zA-Z_]+(PE\w+)_P(\d+)R(\d+)_([a-zA-Z]+)_[Rr]ep(\d+)`),
		Extract: func(g []string) BatchInfo {
			return BatchInfo{
				Editor:    null.StringFrom(g[1]),
				PBS:       toInt(g[2]),
				RTT:       toInt(g[3]),
				Drug:      null.StringFrom(g[4]),
				Replicate: toInt(g[5]),
			}
		},
	},
	{
		// Single-replicate drug convention: no rep suffix at all.
		Name:    "editor-pbsrtt-drug",
		Pattern: regexp.MustCompile(`^[a-zA-Z_]+(PE\w+)_P(\d+)R(\d+)_([a-zA-Z]+)$`),
		Extract: func(g []string) BatchInfo {
			return BatchInfo{
				Editor:    null.StringFrom(g[1]),
				PBS:       toInt(g[2]),
				RTT:       toInt(g[3]),
				Drug:      null.StringFrom(g[4]),
				Replicate: 1,
			}
		},
	},
}

// toInt is only ever called on \d+ captures.
func toInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
