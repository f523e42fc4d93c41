package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/casebench/internal/model"
)

// Column names of the tabular formats
const (
	ScenarioHeader         = "Scenario"
	ColumnScenario         = "scenario"
	ColumnArgument         = "argument"
	ColumnDistilledFactors = "distilled_factors"

	// EmptyClaim stands in for rows that were never sent to a distiller
	EmptyClaim = "{}"
)

// ErrMissingScenarioColumn is returned when a table has no scenario column
var ErrMissingScenarioColumn = errors.New("missing scenario column")

// WriteScenarios writes a generated dataset: one "Scenario" column, one
// rendered template per row
func WriteScenarios(w io.Writer, texts []string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{ScenarioHeader}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, text := range texts {
		if err := writer.Write([]string{text}); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteScenariosFile writes a generated dataset to path, creating parent dirs
func WriteScenariosFile(path string, texts []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteScenarios(f, texts); err != nil {
		return err
	}
	return f.Close()
}

// ReadScenarioTexts returns the scenario column of a table
func ReadScenarioTexts(r io.Reader) ([]string, error) {
	rows, err := ReadScoringRows(r)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.Scenario
	}
	return texts, nil
}

// ReadScoringRows reads scenario, argument and distilled_factors columns.
// Header names are matched case-insensitively after trimming. Rows without a
// distilled_factors value get an empty claim.
func ReadScoringRows(r io.Reader) ([]model.ScoringRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingScenarioColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	scenarioCol, ok := columns[ColumnScenario]
	if !ok {
		return nil, ErrMissingScenarioColumn
	}

	var rows []model.ScoringRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		row := model.ScoringRow{
			Scenario:         field(record, scenarioCol),
			Argument:         field(record, lookup(columns, ColumnArgument)),
			DistilledFactors: field(record, lookup(columns, ColumnDistilledFactors)),
		}
		if strings.TrimSpace(row.DistilledFactors) == "" {
			row.DistilledFactors = EmptyClaim
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadScoringRowsFile opens path and reads its scoring rows
func ReadScoringRowsFile(path string) ([]model.ScoringRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadScoringRows(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// WriteScoringRows writes the scenario/argument/distilled_factors table
func WriteScoringRows(w io.Writer, rows []model.ScoringRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{ColumnScenario, ColumnArgument, ColumnDistilledFactors}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write([]string{row.Scenario, row.Argument, row.DistilledFactors}); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func lookup(columns map[string]int, name string) int {
	if i, ok := columns[name]; ok {
		return i
	}
	return -1
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
