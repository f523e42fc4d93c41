package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/casebench/internal/extract"
	"github.com/ppiankov/casebench/internal/generate"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteScenarios_ReadBack(t *testing.T) {
	g := generate.NewGenerator(generate.NewRand(11), nil)
	scenarios, _, err := g.Dataset(model.ModeArguable, 4, 5)
	require.NoError(t, err)
	texts := render.Scenarios(scenarios)

	var buf bytes.Buffer
	require.NoError(t, WriteScenarios(&buf, texts))
	assert.True(t, strings.HasPrefix(buf.String(), "Scenario\n"))

	got, err := ReadScenarioTexts(&buf)
	require.NoError(t, err)
	require.Equal(t, texts, got)

	for i, text := range got {
		parsed := extract.ParseCaseFactors(text)
		assert.Equal(t, scenarios[i].Input.Len(), len(parsed.Input), "row %d", i)
	}
}

func TestWriteScenariosFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", DatasetFileName(model.ModeUnarguable, 1, 3))
	require.NoError(t, WriteScenariosFile(path, []string{"\nInput Scenario \n\tF1 Disclosure-in-negotiations (D)\n"}))

	rows, err := ReadScoringRowsFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, EmptyClaim, rows[0].DistilledFactors)
}

func TestReadScoringRows_NormalizesHeaders(t *testing.T) {
	input := "\ufeff Scenario ,ARGUMENT,Distilled_Factors\n" +
		"\"Input Scenario\nF1 Disclosure-in-negotiations (D)\",some argument,\"{\"\"TSC1\"\": {}}\"\n" +
		"second,,\n"

	rows, err := ReadScoringRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Input Scenario\nF1 Disclosure-in-negotiations (D)", rows[0].Scenario)
	assert.Equal(t, "some argument", rows[0].Argument)
	assert.Equal(t, `{"TSC1": {}}`, rows[0].DistilledFactors)
	assert.Equal(t, EmptyClaim, rows[1].DistilledFactors)
}

func TestReadScoringRows_MissingScenario(t *testing.T) {
	_, err := ReadScoringRows(strings.NewReader("argument\nfoo\n"))
	assert.True(t, errors.Is(err, ErrMissingScenarioColumn))

	_, err = ReadScoringRows(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrMissingScenarioColumn))
}

func TestWriteScoringRows(t *testing.T) {
	rows := []model.ScoringRow{{Scenario: "s", Argument: "a, with comma", DistilledFactors: "{}"}}

	var buf bytes.Buffer
	require.NoError(t, WriteScoringRows(&buf, rows))

	got, err := ReadScoringRows(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
