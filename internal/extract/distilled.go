package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/casebench/internal/model"
)

// ReasoningEndMarker closes the reasoning trace some models emit before
// their answer
const ReasoningEndMarker = "</think>"

var (
	objectSpanPattern   = regexp.MustCompile(`(?s)\{.*\}`)
	quotedStringPattern = regexp.MustCompile(`"([^"]+)"`)

	sectionPatterns = map[model.Section]*regexp.Regexp{
		model.SectionInput: sectionPattern(model.SectionInput),
		model.SectionTSC1:  sectionPattern(model.SectionTSC1),
		model.SectionTSC2:  sectionPattern(model.SectionTSC2),
	}
)

// sectionPattern matches `"<key>" : { ... }` up to the first closing brace.
// It is not brace-balanced.
func sectionPattern(s model.Section) *regexp.Regexp {
	return regexp.MustCompile(`(?s)"` + regexp.QuoteMeta(s.ClaimKey()) + `"\s*:\s*\{(.*?)\}`)
}

// ClaimParser recovers factor claims from untrusted model answers. It never
// fails: unreadable input yields empty sections and a diagnostic.
type ClaimParser struct{}

// NewClaimParser creates a new claim parser
func NewClaimParser() *ClaimParser {
	return &ClaimParser{}
}

// Parse extracts the quoted factor labels listed under each section key
func (p *ClaimParser) Parse(rawText string) model.DistilledFactorClaim {
	var claim model.DistilledFactorClaim

	text := rawText
	if idx := strings.Index(text, ReasoningEndMarker); idx != -1 {
		text = strings.TrimSpace(text[idx+len(ReasoningEndMarker):])
		claim.Diagnostic.HadReasoning = true
	}

	span := objectSpanPattern.FindString(text)
	if span == "" {
		claim.Diagnostic.Status = model.ClaimUnparseable
		claim.Diagnostic.MissingSections = append([]model.Section(nil), model.Sections...)
		return claim
	}

	found := 0
	for _, section := range model.Sections {
		m := sectionPatterns[section].FindStringSubmatch(span)
		if m == nil {
			claim.Diagnostic.MissingSections = append(claim.Diagnostic.MissingSections, section)
			continue
		}
		found++
		claim.SetSection(section, quotedFactors(m[1]))
	}

	switch found {
	case len(model.Sections):
		claim.Diagnostic.Status = model.ClaimParsed
	case 0:
		claim.Diagnostic.Status = model.ClaimNoKeys
	default:
		claim.Diagnostic.Status = model.ClaimPartial
	}
	return claim
}

// ParseDistilledClaims parses with a default claim parser
func ParseDistilledClaims(rawText string) model.DistilledFactorClaim {
	return NewClaimParser().Parse(rawText)
}

// quotedFactors collects quoted strings, keeping the first mention of each
// factor identity
func quotedFactors(body string) []model.FactorRef {
	seen := make(map[string]bool)
	var refs []model.FactorRef

	for _, m := range quotedStringPattern.FindAllStringSubmatch(body, -1) {
		ref := model.ParseFactorRef(m[1])
		if ref.Text == "" {
			continue
		}
		key := ref.Key()
		if !seen[key] {
			seen[key] = true
			refs = append(refs, ref)
		}
	}
	return refs
}
