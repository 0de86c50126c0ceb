// Package report prints decoded shortcut reports as JSON, YAML or a flattened
// key/value table.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatJSON outputs an indented JSON array of documents.
	FormatJSON Format = "json"
	// FormatYAML outputs a YAML sequence of documents.
	FormatYAML Format = "yaml"
	// FormatTable outputs one key/value table per document.
	FormatTable Format = "table"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "table", "text":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: json, yaml, table)", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// Document is the report of a single file.
type Document struct {
	Name   string
	Report map[string]interface{}
}

// values merges the file name into a copy of the report.
func (d Document) values() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Report)+1)
	for k, v := range d.Report {
		out[k] = v
	}
	out["name"] = d.Name
	return out
}

// Printer handles formatted output to a writer.
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter creates a new Printer.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Print writes every document in the configured format.
func (p *Printer) Print(docs []Document) error {
	switch p.format {
	case FormatJSON:
		return PrintJSON(p.out, documentValues(docs))
	case FormatYAML:
		return PrintYAML(p.out, documentValues(docs))
	case FormatTable:
		for i, doc := range docs {
			if i > 0 {
				if _, err := fmt.Fprintln(p.out); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(p.out, "%s\n", doc.Name); err != nil {
				return err
			}
			if err := SimpleTable(p.out, Flatten(doc.Report)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

func documentValues(docs []Document) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.values())
	}
	return out
}
