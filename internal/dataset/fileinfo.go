package dataset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/ppiankov/casebench/internal/model"
)

// FormatFactor is the only dataset format produced today
const FormatFactor = "factor"

// artifactPrefixes are stripped from file names before metadata is read
var artifactPrefixes = []string{
	"input_file_report_",
	"report_existing_",
	"factor_report_",
	"formatted_",
	"messages_",
	"extracted_",
	"decoded_",
}

var fileNamePattern = regexp.MustCompile(`^([^_]+)_factor_([^_]+)_complexity(\d+)`)

// FileInfo is the metadata encoded in a dataset file name
type FileInfo struct {
	Mode       string `json:"mode"`
	Format     string `json:"format"`
	Number     string `json:"number"`
	Complexity string `json:"complexity"`
}

// StandardName is "<mode>_<format>_<number>_complexity<c>"
func (f FileInfo) StandardName() string {
	return fmt.Sprintf("%s_%s_%s_complexity%s", f.Mode, f.Format, f.Number, f.Complexity)
}

// GenerationMode is the scoring mode named by the file. Names without a
// known mode give model.ModeUnspecified.
func (f FileInfo) GenerationMode() model.GenerationMode {
	return model.ScoringMode(f.Mode)
}

// DatasetFileName names a generated dataset file
func DatasetFileName(mode model.GenerationMode, caseCount, complexity int) string {
	info := FileInfo{
		Mode:       mode.String(),
		Format:     FormatFactor,
		Number:     fmt.Sprint(caseCount),
		Complexity: fmt.Sprint(complexity),
	}
	return info.StandardName() + ".csv"
}

// ParseFileInfo reads mode, number and complexity from a dataset path such
// as "data/unarguable_factor_10_complexity5.csv". Unrecognized names fall
// back to mode "unknown", number "0" and complexity "0".
func ParseFileInfo(path string) FileInfo {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = stripArtifactPrefix(base)
	// run artifacts repeat the format before the standard name
	if rest, ok := strings.CutPrefix(base, FormatFactor+"_"); ok && fileNamePattern.MatchString(rest) {
		base = rest
	}

	if m := fileNamePattern.FindStringSubmatch(base); m != nil {
		return FileInfo{Mode: m[1], Format: FormatFactor, Number: m[2], Complexity: m[3]}
	}

	info := FileInfo{Mode: "unknown", Format: FormatFactor, Number: "0", Complexity: "0"}
	parts := strings.Split(base, "_")

	if c := lastComplexity(base); c != "" {
		info.Complexity = c
	}

	switch idx := slices.Index(parts, FormatFactor); {
	case idx >= 0:
		if idx > 0 {
			info.Mode = parts[idx-1]
		}
		if idx < len(parts)-1 && !strings.HasPrefix(parts[idx+1], "complexity") {
			info.Number = parts[idx+1]
		}
	case len(parts) >= 3 && strings.Contains(parts[len(parts)-1], "complexity"):
		info.Mode = parts[0]
		info.Number = parts[1]
		info.Complexity = strings.TrimPrefix(parts[len(parts)-1], "complexity")
	case len(parts) == 2 && strings.Contains(parts[1], "complexity"):
		info.Mode = parts[0]
		info.Number = "unknown"
		info.Complexity = strings.TrimPrefix(parts[1], "complexity")
	}

	if info.Mode == "unknown" && parts[0] != "" {
		info.Mode = parts[0]
	}
	return info
}

func stripArtifactPrefix(base string) string {
	for _, prefix := range artifactPrefixes {
		if rest, ok := strings.CutPrefix(base, prefix); ok {
			return rest
		}
	}
	return base
}

var trailingComplexity = regexp.MustCompile(`complexity(\d+)$`)

func lastComplexity(base string) string {
	if m := trailingComplexity.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return ""
}
