package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// PrinterOptions contains options for rendering reports
type PrinterOptions struct {
	Format OutputFormat
	Quiet  bool
	// NoColor disables ANSI styling in table output.
	NoColor bool
	Out     io.Writer
}

// Printer renders introspection reports
type Printer struct {
	options PrinterOptions
}

// NewPrinter creates a printer. A nil Out writes to stdout.
func NewPrinter(options PrinterOptions) (*Printer, error) {
	switch options.Format {
	case "":
		options.Format = OutputFormatTable
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", options.Format)
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	return &Printer{options: options}, nil
}

// Print renders report in the configured format
func (p *Printer) Print(report any) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	switch p.options.Format {
	case OutputFormatJSON:
		_, err := fmt.Fprintln(p.options.Out, string(jsonData))
		return err
	case OutputFormatYAML:
		return p.outputYAML(jsonData)
	default:
		return p.outputTable(jsonData)
	}
}

// outputYAML converts JSON to YAML so both formats share field names
func (p *Printer) outputYAML(jsonData []byte) error {
	var data interface{}
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}

	_, err = fmt.Fprint(p.options.Out, string(yamlData))
	return err
}

func (p *Printer) outputTable(jsonData []byte) error {
	var data interface{}
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	switch d := data.(type) {
	case map[string]interface{}:
		return p.formatTableFromObject(d)
	case []interface{}:
		return p.formatTableFromArray(d)
	default:
		_, err := fmt.Fprintln(p.options.Out, string(jsonData))
		return err
	}
}

// formatTableFromObject handles wrapper objects like {"shadows": [...], "total": N}
func (p *Printer) formatTableFromObject(data map[string]interface{}) error {
	arrayKey := p.findArrayKey(data)
	if arrayKey == "" {
		return p.formatKeyValueTable(data)
	}

	if err := p.formatTableFromArray(data[arrayKey].([]interface{})); err != nil {
		return err
	}
	if total, ok := data["total"]; ok && !p.options.Quiet {
		fmt.Fprintf(p.options.Out, "\n%s %v %s\n",
			p.style(text.FgHiBlue, "Total:"),
			p.style(text.FgHiWhite, fmt.Sprint(total)),
			arrayKey)
	}
	return nil
}

// findArrayKey looks for the list inside a report
func (p *Printer) findArrayKey(data map[string]interface{}) string {
	for _, key := range []string{"shadows", "rows", "types", "items"} {
		if _, isArray := data[key].([]interface{}); isArray {
			return key
		}
	}
	return ""
}

func (p *Printer) formatTableFromArray(data []interface{}) error {
	if len(data) == 0 {
		if !p.options.Quiet {
			fmt.Fprintln(p.options.Out, p.style(text.FgYellow, "No items found"))
		}
		return nil
	}

	firstObj, ok := data[0].(map[string]interface{})
	if !ok {
		for _, item := range data {
			fmt.Fprintln(p.options.Out, item)
		}
		return nil
	}

	columns := p.columns(firstObj)

	t := p.newTable()
	headers := make(table.Row, len(columns))
	for i, col := range columns {
		headers[i] = p.style(text.FgHiCyan, strings.ToUpper(col))
	}
	t.AppendHeader(headers)

	for _, item := range data {
		itemMap, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[i] = p.formatCellValue(col, itemMap[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	return nil
}

// columns orders well-known report fields first, then the rest alphabetically
func (p *Printer) columns(sample map[string]interface{}) []string {
	priority := []string{"name", "type", "outcome", "shadow", "target", "gate", "internal", "internalOnly", "candidates", "constructors", "methods"}

	var columns []string
	seen := map[string]bool{}
	for _, col := range priority {
		if _, ok := sample[col]; ok {
			columns = append(columns, col)
			seen[col] = true
		}
	}

	var rest []string
	for key := range sample {
		if !seen[key] && key != "sdk" {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// formatCellValue formats individual cell values with appropriate styling
func (p *Printer) formatCellValue(column string, value interface{}) interface{} {
	if value == nil {
		return p.style(text.FgHiBlack, "-")
	}

	switch strings.ToLower(column) {
	case "outcome":
		return p.formatOutcome(fmt.Sprint(value))
	case "internal", "internalonly":
		if b, ok := value.(bool); ok && b {
			return p.style(text.FgYellow, "internal")
		}
		return p.style(text.FgHiBlack, "public")
	case "candidates", "constructors", "methods":
		return p.formatList(value)
	default:
		return fmt.Sprint(value)
	}
}

func (p *Printer) formatOutcome(outcome string) string {
	switch outcome {
	case "shadowed":
		return p.style(text.FgGreen, outcome)
	case "ambiguous":
		return p.style(text.FgRed, outcome)
	default:
		return p.style(text.FgHiBlack, outcome)
	}
}

// formatList shows the first entries of a list and a count of the rest
func (p *Printer) formatList(value interface{}) interface{} {
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Sprint(value)
	}
	if len(items) == 0 {
		return p.style(text.FgHiBlack, "none")
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = fmt.Sprint(item)
	}
	if len(names) <= 3 {
		return strings.Join(names, "\n")
	}
	return fmt.Sprintf("%s\n(+%d more)", strings.Join(names[:3], "\n"), len(names)-3)
}

// formatKeyValueTable formats an object as key-value pairs
func (p *Printer) formatKeyValueTable(data map[string]interface{}) error {
	t := p.newTable()
	t.AppendHeader(table.Row{
		p.style(text.FgHiCyan, "PROPERTY"),
		p.style(text.FgHiCyan, "VALUE"),
	})

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		t.AppendRow(table.Row{
			p.style(text.FgYellow, key),
			p.formatCellValue(key, data[key]),
		})
	}

	t.Render()
	return nil
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.options.Out)
	t.SetStyle(table.StyleRounded)
	return t
}

func (p *Printer) style(color text.Color, s string) string {
	if p.options.NoColor {
		return s
	}
	return color.Sprint(s)
}
