// Package preflight provides readiness checks for the directories, binaries
// and download endpoint trackprep depends on.
//
// The CLI "trackprep status" command renders these results; the pipeline
// itself does not gate on them; the toolchain locator is the only hard gate.
package preflight
