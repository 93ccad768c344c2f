package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OutputFormat selects how a batch is written by RenderBatch.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

const tabwriterPadding = 2

// noResultsText is shown in place of an empty batch.
const noResultsText = "No Pokémon found."

// SupportedOutputFormats lists valid OutputFormat values.
func SupportedOutputFormats() []OutputFormat {
	return []OutputFormat{OutputTable, OutputJSON, OutputNDJSON}
}

// IsValidOutputFormat reports whether f is supported.
func IsValidOutputFormat(f OutputFormat) bool {
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return true
	default:
		return false
	}
}

// BatchReport is the JSON shape of a rendered batch.
type BatchReport struct {
	Mode      string     `json:"mode"`
	Category  string     `json:"category,omitempty"`
	Heading   string     `json:"heading"`
	Creatures []Creature `json:"creatures"`
}

// NewBatchReport wraps a loaded batch with its mode.
func NewBatchReport(mode FetchMode, creatures []Creature) BatchReport {
	r := BatchReport{
		Mode:      "random",
		Heading:   Heading(mode),
		Creatures: creatures,
	}
	if m, ok := mode.(FilteredMode); ok {
		r.Mode = "type"
		r.Category = m.Category
	}
	if r.Creatures == nil {
		r.Creatures = []Creature{}
	}
	return r
}

// RenderBatch writes a batch in the given format.
func RenderBatch(w io.Writer, format OutputFormat, report BatchReport) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, c := range report.Creatures {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	case OutputTable:
		return renderBatchTable(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderBatchTable(w io.Writer, report BatchReport) error {
	if _, err := fmt.Fprintln(w, report.Heading); err != nil {
		return err
	}
	if len(report.Creatures) == 0 {
		_, err := fmt.Fprintln(w, noResultsText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tNAME\tTYPES\tIMAGE\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range report.Creatures {
		image := c.ImageURL
		if image == "" {
			image = "-"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.DisplayName(), c.CategoryLabel(), image); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

// RenderCategories writes the category list in the given format.
func RenderCategories(w io.Writer, format OutputFormat, categories []Category) error {
	switch format {
	case OutputJSON:
		if categories == nil {
			categories = []Category{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(categories)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, c := range categories {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	case OutputTable:
		for _, c := range categories {
			if _, err := fmt.Fprintf(w, "%-10s %s\n", c.Name, c.Label()); err != nil {
				return err
			}
		}
		p := message.NewPrinter(language.English)
		_, err := p.Fprintf(w, "%d types\n", len(categories))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
