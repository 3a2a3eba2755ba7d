// Package ux holds output rendering shared by the CLI commands: structured
// printers for machine-readable output and text helpers for the human one.
package ux

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Printer renders command output in one of the supported encodings.
type Printer struct {
	encode func(w io.Writer, v any) error
	w      io.Writer
}

// NewPrinter builds a printer for the named format writing to w.
// Supported formats are text, json, and yaml; empty means text.
func NewPrinter(format string, w io.Writer) (*Printer, error) {
	var encode func(io.Writer, any) error
	switch format {
	case "json":
		encode = encodeJSON
	case "yaml":
		encode = encodeYAML
	case "text", "":
		encode = encodeText
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
	return &Printer{encode: encode, w: w}, nil
}

// Print renders v to the printer's writer.
func (p *Printer) Print(v any) error {
	return p.encode(p.w, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// encodeText handles strings and Stringers; commands render richer text
// themselves.
func encodeText(w io.Writer, v any) error {
	switch t := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, t.String())
		return err
	default:
		return fmt.Errorf("text output needs a string or fmt.Stringer, got %T", v)
	}
}
