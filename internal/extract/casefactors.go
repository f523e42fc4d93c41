package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/casebench/internal/model"
)

var (
	inputHeaderPattern = regexp.MustCompile(`(?i)Input\s+Scenario`)
	tsc1HeaderPattern  = regexp.MustCompile(`(?i)TSC\s*1\b`)
	tsc2HeaderPattern  = regexp.MustCompile(`(?i)TSC\s*2\b`)
	factorPattern      = regexp.MustCompile(`F\d+\s+[^(]+\([PD]\)`)

	// escapedNewline is the two-character "\n" the renderer uses between
	// factors of one section
	escapedNewline = regexp.MustCompile(`\\n`)
)

// CaseFactorParser recovers ground-truth factor sets from rendered scenarios
type CaseFactorParser struct{}

// NewCaseFactorParser creates a new parser
func NewCaseFactorParser() *CaseFactorParser {
	return &CaseFactorParser{}
}

// Parse scans the text line by line. A header line switches the active
// section, a factor line is appended to it, anything else is ignored.
// Factors seen before the first header are dropped.
func (p *CaseFactorParser) Parse(rawText string) model.ParsedCaseFactors {
	var parsed model.ParsedCaseFactors
	var current *model.Section

	for _, line := range logicalLines(rawText) {
		if section, ok := matchHeader(line); ok {
			current = &section
			continue
		}

		factor := factorPattern.FindString(line)
		if factor == "" || current == nil {
			continue
		}
		factor = strings.TrimRight(strings.TrimSpace(factor), ",")
		parsed.Append(*current, model.ParseFactorRef(factor))
	}

	return parsed
}

// ParseCaseFactors parses with a default parser
func ParseCaseFactors(rawText string) model.ParsedCaseFactors {
	return NewCaseFactorParser().Parse(rawText)
}

// logicalLines splits on real newlines and on escaped "\n" separators,
// trimming whitespace and dropping blank lines
func logicalLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, physical := range strings.Split(text, "\n") {
		for _, part := range escapedNewline.Split(physical, -1) {
			part = strings.TrimSpace(part)
			if part != "" {
				lines = append(lines, part)
			}
		}
	}
	return lines
}

func matchHeader(line string) (model.Section, bool) {
	switch {
	case inputHeaderPattern.MatchString(line):
		return model.SectionInput, true
	case tsc1HeaderPattern.MatchString(line):
		return model.SectionTSC1, true
	case tsc2HeaderPattern.MatchString(line):
		return model.SectionTSC2, true
	}
	return 0, false
}
