// Package output prints user-facing results: colored status lines, tables
// and machine-readable JSON or YAML. Diagnostics belong in the logger package.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

var out io.Writer

// SetWriter redirects all output. A nil writer restores color.Output.
func SetWriter(w io.Writer) {
	out = w
}

func writer() io.Writer {
	if out != nil {
		return out
	}
	return color.Output
}

// JSON outputs data as indented JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAML outputs data as a YAML document
func YAML(data interface{}) error {
	encoder := yaml.NewEncoder(writer())
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Table outputs rows under headers with columns padded to the widest cell.
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) {
		padded := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		_, _ = fmt.Fprintln(writer(), strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	line(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(writer(), "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(writer(), "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(writer(), "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(writer(), "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(writer(), format+"\n", args...)
}
