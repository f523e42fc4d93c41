package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/model"
)

// Kind selects the heading and file prefix of a markdown report
type Kind int

const (
	// KindRun reports a batch the models were just run on
	KindRun Kind = iota
	// KindExisting reports a previously recorded run file
	KindExisting
	// KindInputFile reports a scoring table analyzed as-is
	KindInputFile
)

func (k Kind) title() string {
	switch k {
	case KindExisting:
		return "Legal Argument Generation Results (Existing File)"
	case KindInputFile:
		return "Input File Analysis Report"
	default:
		return "Legal Argument Generation Results (Factor-Based)"
	}
}

func (k Kind) prefix() string {
	switch k {
	case KindExisting:
		return "report_existing_"
	case KindInputFile:
		return "input_file_report_"
	default:
		return "factor_report_"
	}
}

// Document is everything a markdown score report shows
type Document struct {
	Kind   Kind
	Model  string // empty when no model was run
	Source string // input file, if any
	Date   time.Time
	Info   dataset.FileInfo
	Report model.AggregateReport
}

// FileName returns "<prefix><standard name>_<timestamp>.md"
func (d Document) FileName() string {
	return d.Kind.prefix() + d.Info.StandardName() + "_" + d.Date.Format("20060102_150405") + ".md"
}

// Markdown renders the report
func (d Document) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Kind.title())
	if d.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", d.Model)
	} else {
		b.WriteString("Model: Not Applicable (Direct File Analysis)\n")
	}
	fmt.Fprintf(&b, "Run Date: %s\n\n", d.Date.Format("2006-01-02 15:04:05"))

	b.WriteString("## Scenario Information\n\n")
	if d.Source != "" {
		fmt.Fprintf(&b, "- Source File: %s\n", filepath.Base(d.Source))
	}
	fmt.Fprintf(&b, "- Mode: %s\n", d.Info.Mode)
	fmt.Fprintf(&b, "- Format: %s\n", d.Info.Format)
	fmt.Fprintf(&b, "- Number: %s\n", d.Info.Number)
	fmt.Fprintf(&b, "- Complexity: %s\n\n", d.Info.Complexity)

	b.WriteString("## Score Results\n\n")
	b.WriteString(Table(d.Info, d.Report, true))
	b.WriteString("\n")
	return b.String()
}

// WriteMarkdown writes the report into dir and returns the file path
func WriteMarkdown(dir string, d Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, d.FileName())
	if err := os.WriteFile(path, []byte(d.Markdown()), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
