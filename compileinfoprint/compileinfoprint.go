// Package compileinfoprint is imported for the side effect of printing build
// information to stderr at startup.
package compileinfoprint

import "github.com/Strugatsky/Prime-editing-tools/compileinfo"

func init() {
	compileinfo.PrintToStderr()
}
