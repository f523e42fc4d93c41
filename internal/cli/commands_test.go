package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderScenario(t *testing.T, mode model.GenerationMode, input, tsc1, tsc2 []int) string {
	t.Helper()
	in, err := model.FactorSetFromIDs(input...)
	require.NoError(t, err)
	s1, err := model.FactorSetFromIDs(tsc1...)
	require.NoError(t, err)
	s2, err := model.FactorSetFromIDs(tsc2...)
	require.NoError(t, err)
	return render.Scenario(model.Scenario{Input: in, TSC1: s1, TSC2: s2, Mode: mode})
}

// cleanArguable shares F4/F21 (P) with TSC1 and F1 (D) with TSC2
func cleanArguable(t *testing.T) string {
	return renderScenario(t, model.ModeArguable, []int{1, 4, 21}, []int{4, 6, 21}, []int{1, 3, 5})
}

func resetValidateFlags(t *testing.T) {
	t.Cleanup(func() {
		validateMode = ""
		validateComplexity = -1
	})
	validateMode = ""
	validateComplexity = -1
}

func TestRunValidate_Clean(t *testing.T) {
	resetValidateFlags(t)
	path := filepath.Join(t.TempDir(), "arguable_factor_1_complexity3.csv")
	require.NoError(t, dataset.WriteScenariosFile(path, []string{cleanArguable(t)}))

	assert.NoError(t, runValidate(validateCmd, []string{path}))
}

func TestRunValidate_ReportsOverlap(t *testing.T) {
	resetValidateFlags(t)
	scenario := renderScenario(t, model.ModeUnarguable, []int{1, 4, 21}, []int{4, 6, 8}, []int{3, 5, 10})
	path := filepath.Join(t.TempDir(), "non-arguable_factor_1_complexity3.csv")
	require.NoError(t, dataset.WriteScenariosFile(path, []string{scenario}))

	err := runValidate(validateCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 scenarios failed validation")
}

func TestRunValidate_ModeOverride(t *testing.T) {
	resetValidateFlags(t)
	path := filepath.Join(t.TempDir(), "scenarios.csv")
	require.NoError(t, dataset.WriteScenariosFile(path, []string{cleanArguable(t)}))

	validateMode = "arguable"
	validateComplexity = 3
	assert.NoError(t, runValidate(validateCmd, []string{path}))

	validateMode = "sideways"
	assert.Error(t, runValidate(validateCmd, []string{path}))
}

func TestRunScore_WritesInputFileReport(t *testing.T) {
	t.Cleanup(func() {
		scoreMode, scoreReportDir = "", ""
		scoreExisting, scoreJSON, scoreNoReport = false, false, false
	})
	clearProviderEnv(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "arguable_factor_1_complexity3.csv")
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, dataset.WriteScoringRows(f, []model.ScoringRow{{
		Scenario: cleanArguable(t),
		DistilledFactors: `{"Input Case": {"F1 Disclosure-in-negotiations (D)", "F4 Agreed-not-to-disclose (P)", "F21 Knew-info-confidential (P)"},
"TSC1": {"F4 Agreed-not-to-disclose (P)", "F6 Security-measures (P)", "F21 Knew-info-confidential (P)"},
"TSC2": {"F1 Disclosure-in-negotiations (D)", "F3 Employee-sole-developer (D)", "F5 Agreement-not-specific (D)"}}`,
	}}))
	require.NoError(t, f.Close())

	scoreReportDir = filepath.Join(dir, "reports")
	require.NoError(t, runScore(scoreCmd, []string{input}))

	reports, err := filepath.Glob(filepath.Join(scoreReportDir, "input_file_report_arguable_factor_1_complexity3_*.md"))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "100.00")
}

func TestRunScore_ExistingRunDir(t *testing.T) {
	t.Cleanup(func() {
		scoreExisting, scoreNoReport = false, false
	})
	clearProviderEnv(t)

	dir := t.TempDir()
	_, err := latestMessagesFile(dir)
	require.Error(t, err)

	scoreExisting = true
	scoreNoReport = true
	assert.Error(t, runScore(scoreCmd, []string{dir}), "empty run dir has nothing to score")

	path := filepath.Join(dir, "messages_factor_arguable_factor_1_complexity3_20240101_090000.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, dataset.WriteScoringRows(f, []model.ScoringRow{{Scenario: cleanArguable(t), DistilledFactors: "{}"}}))
	require.NoError(t, f.Close())

	assert.NoError(t, runScore(scoreCmd, []string{dir}))
}

func TestRunValidate_UnknownFileModeNeedsFlag(t *testing.T) {
	resetValidateFlags(t)
	path := filepath.Join(t.TempDir(), "answers.csv")
	require.NoError(t, dataset.WriteScenariosFile(path, []string{cleanArguable(t)}))

	err := runValidate(validateCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --mode")
}

func TestRunRun_RejectsUnknownMode(t *testing.T) {
	t.Cleanup(func() { runMode = "" })
	clearProviderEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "arguable_factor_1_complexity3.csv")
	require.NoError(t, dataset.WriteScenariosFile(path, []string{cleanArguable(t)}))

	runMode = "sideways"
	err := runRun(runCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "sideways"`)
}
