package dataset

import (
	"testing"

	"github.com/ppiankov/casebench/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestParseFileInfo(t *testing.T) {
	tests := []struct {
		path string
		want FileInfo
	}{
		{"data/non-arguable_factor_10_complexity5.csv", FileInfo{"non-arguable", "factor", "10", "5"}},
		{"arguable_factor_3_complexity2", FileInfo{"arguable", "factor", "3", "2"}},
		{"formatted_reordered_factor_20_complexity7.csv", FileInfo{"reordered", "factor", "20", "7"}},
		{"out/messages_factor_arguable_factor_10_complexity5_20250101_120000.csv", FileInfo{"arguable", "factor", "10", "5"}},
		{"input_file_report_unarguable_factor_4_complexity3.md", FileInfo{"unarguable", "factor", "4", "3"}},
		{"arguable_10_complexity5.csv", FileInfo{"arguable", "factor", "10", "5"}},
		{"arguable_complexity5.csv", FileInfo{"arguable", "factor", "unknown", "5"}},
		{"extracted_reordered_factor_complexity4.csv", FileInfo{"reordered", "factor", "0", "4"}},
		{"scenarios.csv", FileInfo{"scenarios", "factor", "0", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFileInfo(tt.path))
		})
	}
}

func TestDatasetFileName(t *testing.T) {
	assert.Equal(t, "unarguable_factor_10_complexity5.csv", DatasetFileName(model.ModeUnarguable, 10, 5))
	assert.Equal(t, model.ModeUnarguable, ParseFileInfo(DatasetFileName(model.ModeUnarguable, 10, 5)).GenerationMode())
	assert.Equal(t, "reordered_factor_1_complexity3.csv", DatasetFileName(model.ModeReordered, 1, 3))

	info := ParseFileInfo(DatasetFileName(model.ModeArguable, 7, 4))
	assert.Equal(t, "arguable_factor_7_complexity4", info.StandardName())
	assert.Equal(t, model.ModeArguable, info.GenerationMode())
}

func TestFileInfo_UnknownModeIsUnspecified(t *testing.T) {
	for _, path := range []string{"mystery.csv", "results/answers.csv", "sideways_factor_3_complexity2.csv"} {
		assert.Equal(t, model.ModeUnspecified, ParseFileInfo(path).GenerationMode(), path)
	}
	assert.Equal(t, model.ModeUnarguable, ParseFileInfo("non-arguable_factor_3_complexity2.csv").GenerationMode())
}
