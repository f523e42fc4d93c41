package model

// Section names one of the three factor groups of a scenario
type Section int

const (
	SectionInput Section = iota
	SectionTSC1
	SectionTSC2
)

// Sections lists the sections in template order
var Sections = []Section{SectionInput, SectionTSC1, SectionTSC2}

func (s Section) String() string {
	switch s {
	case SectionTSC1:
		return "TSC1"
	case SectionTSC2:
		return "TSC2"
	default:
		return "Input"
	}
}

// ClaimKey is the key a model answer uses for the section
func (s Section) ClaimKey() string {
	if s == SectionInput {
		return "Input Case"
	}
	return s.String()
}

// ParsedCaseFactors is the ground truth recovered from a rendered scenario.
// Each section keeps the order the factors appeared in.
type ParsedCaseFactors struct {
	Input []FactorRef `json:"input"`
	TSC1  []FactorRef `json:"tsc1"`
	TSC2  []FactorRef `json:"tsc2"`
}

// Section returns the factors of one section
func (p *ParsedCaseFactors) Section(s Section) []FactorRef {
	switch s {
	case SectionTSC1:
		return p.TSC1
	case SectionTSC2:
		return p.TSC2
	default:
		return p.Input
	}
}

// Append adds a factor to a section
func (p *ParsedCaseFactors) Append(s Section, ref FactorRef) {
	switch s {
	case SectionTSC1:
		p.TSC1 = append(p.TSC1, ref)
	case SectionTSC2:
		p.TSC2 = append(p.TSC2, ref)
	default:
		p.Input = append(p.Input, ref)
	}
}

// Total is the number of factors across all sections
func (p *ParsedCaseFactors) Total() int {
	return len(p.Input) + len(p.TSC1) + len(p.TSC2)
}

// ClaimStatus says how much of a model answer could be read
type ClaimStatus string

const (
	// ClaimParsed means all three section keys were found
	ClaimParsed ClaimStatus = "parsed"
	// ClaimPartial means some section keys were missing
	ClaimPartial ClaimStatus = "partial"
	// ClaimNoKeys means a brace span existed but held none of the keys
	ClaimNoKeys ClaimStatus = "no_keys"
	// ClaimUnparseable means no brace-delimited span was found at all
	ClaimUnparseable ClaimStatus = "unparseable"
)

// ClaimDiagnostic explains what the distilled-claim parser could recover
type ClaimDiagnostic struct {
	Status          ClaimStatus `json:"status"`
	MissingSections []Section   `json:"missing_sections,omitempty"`
	HadReasoning    bool        `json:"had_reasoning,omitempty"`
}

// DistilledFactorClaim is the factor claim recovered from a model answer.
// Each section is deduplicated by factor identity, first mention wins.
type DistilledFactorClaim struct {
	InputCase  []FactorRef     `json:"input_case"`
	TSC1       []FactorRef     `json:"tsc1"`
	TSC2       []FactorRef     `json:"tsc2"`
	Diagnostic ClaimDiagnostic `json:"diagnostic"`
}

// Section returns the claimed factors of one section
func (d *DistilledFactorClaim) Section(s Section) []FactorRef {
	switch s {
	case SectionTSC1:
		return d.TSC1
	case SectionTSC2:
		return d.TSC2
	default:
		return d.InputCase
	}
}

// SetSection replaces the claimed factors of one section
func (d *DistilledFactorClaim) SetSection(s Section, refs []FactorRef) {
	switch s {
	case SectionTSC1:
		d.TSC1 = refs
	case SectionTSC2:
		d.TSC2 = refs
	default:
		d.InputCase = refs
	}
}

// Total is the number of claimed factors across all sections
func (d *DistilledFactorClaim) Total() int {
	return len(d.InputCase) + len(d.TSC1) + len(d.TSC2)
}

// IsEmpty reports whether nothing was claimed. Use Diagnostic to tell an
// empty claim from an unreadable one.
func (d *DistilledFactorClaim) IsEmpty() bool {
	return d.Total() == 0
}
