package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/model"
)

// Columns of the score table. AbstentionColumn is only added for unarguable
// batches.
var (
	Columns = []string{
		"Mode", "Format", "Number", "Complexity",
		"Original Factors", "Distilled Factors",
		"Total Mismatches", "Total Weaknesses",
		"Accuracy (%)", "Strength (%)",
	}
	AbstentionColumn = "Successful Abstention Ratio (%)"
)

// Table renders one batch summary as a single-row table, ASCII or Markdown
func Table(info dataset.FileInfo, r model.AggregateReport, markdown bool) string {
	w := table.NewWriter()
	if !markdown {
		w.SetStyle(table.StyleLight)
	}
	w.Style().Format.Header = text.FormatDefault

	header := make(table.Row, 0, len(Columns)+1)
	for _, c := range Columns {
		header = append(header, c)
	}
	row := table.Row{
		info.Mode, info.Format, info.Number, info.Complexity,
		r.OriginalFactors, r.DistilledFactors,
		r.TotalMismatches, r.TotalWeaknesses,
		pct(r.MeanAccuracyPct), pct(r.MeanStrengthPct),
	}
	if r.HasAbstention {
		header = append(header, AbstentionColumn)
		row = append(row, pct(r.AbstentionRatioPct))
	}

	w.AppendHeader(header)
	w.AppendRow(row)

	configs := make([]table.ColumnConfig, 0, len(row)-4)
	for i := 5; i <= len(row); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	w.SetColumnConfigs(configs)

	if markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
