package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"
	"github.com/mitchellh/cli"
	"gopkg.in/yaml.v3"
)

// Format is a command output format.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatDiscord Format = "discord"
)

// ParseFormat validates a -format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatDiscord:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, yaml or discord)", s)
	}
}

// Result is one command result in every renderable shape.
type Result struct {
	// Data is encoded for json and yaml output.
	Data any

	// Embeds are encoded as JSON for discord output.
	Embeds []*discordgo.MessageEmbed

	Header []string
	Rows   [][]string
}

// Printer writes results to a cli.Ui.
type Printer struct {
	format Format
	ui     cli.Ui
}

// NewPrinter returns a Printer for format.
func NewPrinter(format Format, ui cli.Ui) *Printer {
	return &Printer{format: format, ui: ui}
}

// Print renders r.
func (p *Printer) Print(r Result) error {
	var buf bytes.Buffer

	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.Data); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}

	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r.Data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}

	case FormatDiscord:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.Embeds); err != nil {
			return fmt.Errorf("failed to encode embeds: %w", err)
		}

	default:
		tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(r.Header, "\t"))
		for _, row := range r.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	p.ui.Output(strings.TrimRight(buf.String(), "\n"))
	return nil
}
