package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"trackprep/internal/deps"
	"trackprep/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusFail
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct {
	tag   string
	color string
}{
	statusInfo: {"INFO", ansiBlue},
	statusOK:   {"OK", ansiGreen},
	statusWarn: {"WARN", ansiYellow},
	statusFail: {"ERROR", ansiRed},
}

// renderStatusLine formats "  Label:   [TAG] message", optionally wrapped in
// the kind's ANSI color.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.tag + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

func renderSectionHeader(title string, colorize bool) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	lines := []string{heading, strings.Repeat("-", len(heading))}
	if colorize {
		for i := range lines {
			lines[i] = ansiBlue + lines[i] + ansiReset
		}
	}
	return lines
}

// dependencyLines renders one line per binary plus a trailing summary of the
// required ones that are missing. Optional binaries only warn.
func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	var missing []string
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusFail
		if dep.Optional {
			kind = statusWarn
		} else {
			missing = append(missing, dep.Name)
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing", statusFail, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		kind := statusOK
		if !result.Passed {
			kind = statusFail
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
