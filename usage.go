package paramparse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Column identifies a column of the parameter table written by WriteUsage.
type Column int

const (
	ColumnParameter Column = iota
	ColumnProperties
	ColumnAliases
	ColumnDescription
	ColumnRequired
)

var allColumns = []Column{
	ColumnParameter, ColumnProperties, ColumnAliases, ColumnDescription, ColumnRequired,
}

func (c Column) String() string {
	switch c {
	case ColumnParameter:
		return "Parameter"
	case ColumnProperties:
		return "Properties"
	case ColumnAliases:
		return "Aliases"
	case ColumnDescription:
		return "Description"
	case ColumnRequired:
		return "Required"
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// minimum width (header width plus padding, except for the first column)
func (c Column) minWidth(padding int) int {
	if c == ColumnParameter {
		return len(c.String())
	}
	return len(c.String()) + padding
}

func (c Column) value(p *Parameter) string {
	switch c {
	case ColumnParameter:
		return p.Token()
	case ColumnProperties:
		return p.PropertiesUsage()
	case ColumnAliases:
		return p.AliasUsage(false)
	case ColumnDescription:
		return p.Description()
	case ColumnRequired:
		if p.Required() {
			return "Yes"
		}
	}
	return ""
}

// UsageConfig controls the output of WriteUsage.
type UsageConfig struct {
	AppName       string
	Version       string
	Description   string
	Binary        string   // program name in the usage line; default: base name of os.Args[0]
	RequiredFirst bool     // list required parameters first within each prefix
	ColumnPadding int      // extra spaces after each column; default: 2
	Exclude       []Column // columns to leave out of the parameter table
	Color         bool     // colorize headings
}

func (cfg UsageConfig) binary() string {
	if cfg.Binary != "" {
		return cfg.Binary
	}
	return filepath.Base(os.Args[0])
}

// -----

// PrintShortUsage writes the one-line usage of the registry to standard
// output.
func PrintShortUsage(reg *Registry, requiredFirst bool) error {
	return WriteShortUsage(os.Stdout, reg, "", requiredFirst)
}

// WriteShortUsage writes a one-line usage of the registry to w, starting
// with binary (or the base name of os.Args[0], if empty).
func WriteShortUsage(w io.Writer, reg *Registry, binary string, requiredFirst bool) error {
	cfg := UsageConfig{Binary: binary, RequiredFirst: requiredFirst}
	_, err := fmt.Fprintln(w, shortUsage(reg, cfg))
	return err
}

func shortUsage(reg *Registry, cfg UsageConfig) string {
	parts := []string{cfg.binary()}
	for _, p := range orderedParameters(reg, cfg.RequiredFirst) {
		parts = append(parts, p.Usage())
	}
	return strings.Join(parts, " ")
}

// OrderedParameters returns all parameters grouped by prefix. With
// requiredFirst, required parameters move to the front of their group.
func orderedParameters(reg *Registry, requiredFirst bool) []*Parameter {
	out := []*Parameter{}
	for _, prefix := range reg.Prefixes() {
		params := reg.Parameters(prefix)
		if requiredFirst {
			slices.SortStableFunc(params, func(a, b *Parameter) int {
				switch {
				case a.Required() == b.Required():
					return 0
				case a.Required():
					return -1
				}
				return 1
			})
		}
		out = append(out, params...)
	}
	return out
}

// PrintUsage writes the full usage of the registry to standard output.
// Headings are colorized if standard output is a terminal.
func PrintUsage(reg *Registry, cfg UsageConfig) error {
	cfg.Color = term.IsTerminal(int(os.Stdout.Fd()))
	return WriteUsage(os.Stdout, reg, cfg)
}

// WriteUsage writes the full usage of the registry to w: application name
// and version, description, the one-line usage, and a table with one row
// per parameter.
func WriteUsage(w io.Writer, reg *Registry, cfg UsageConfig) error {
	if cfg.ColumnPadding <= 0 {
		cfg.ColumnPadding = 2
	}

	heading := color.New(color.Bold)
	header := color.New(color.FgCyan)
	if cfg.Color {
		heading.EnableColor()
		header.EnableColor()
	} else {
		heading.DisableColor()
		header.DisableColor()
	}

	var b strings.Builder

	b.WriteString("\n" + cfg.AppName)
	if cfg.Version != "" {
		b.WriteString(" " + cfg.Version)
	}
	b.WriteString("\n\n")

	if cfg.Description != "" {
		b.WriteString(heading.Sprint("Description:") + "\n\n")
		b.WriteString("\t" + cfg.Description + "\n\n")
	}

	b.WriteString(heading.Sprint("Usage:") + "\n\n")
	b.WriteString("\t" + shortUsage(reg, cfg) + "\n\n")

	columns := slices.DeleteFunc(slices.Clone(allColumns), func(c Column) bool {
		return slices.Contains(cfg.Exclude, c)
	})
	params := orderedParameters(reg, cfg.RequiredFirst)

	// Find width of each column
	widths := make([]int, len(columns))
	rows := make([][]string, len(params))
	for i, c := range columns {
		widths[i] = c.minWidth(cfg.ColumnPadding)
	}
	for j, p := range params {
		rows[j] = make([]string, len(columns))
		for i, c := range columns {
			v := c.value(p)
			rows[j][i] = v
			widths[i] = max(widths[i], len(v)+cfg.ColumnPadding)
		}
	}

	b.WriteString(heading.Sprint("Parameters:") + "\n\n")

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.String()
	}
	b.WriteString("\t" + header.Sprint(formatRow(names, widths)) + "\n")
	for _, row := range rows {
		b.WriteString("\t" + formatRow(row, widths) + "\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func formatRow(values []string, widths []int) string {
	var b strings.Builder
	for i, v := range values {
		fmt.Fprintf(&b, "%-*s ", widths[i], v)
	}
	return strings.TrimRight(b.String(), " ")
}
