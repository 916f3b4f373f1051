// Package compileinfo reports how the running binary was built, so that
// numbers in shared databases can be traced back to a tool version.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type Info struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (i Info) String() string {
	mod := ""
	if i.Modified {
		mod = " (with uncommitted changes)"
	}

	return fmt.Sprintf("%s built with %s at commit %s from %s%s", i.Package, i.GoVersion, i.Commit, i.CommitTime, mod)
}

func Current() Info {
	out := Info{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Package = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStderr() {
	fmt.Fprintln(os.Stderr, Current())
}
