package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Polarity tells which side of a trade secret dispute a factor favors
type Polarity int

const (
	Plaintiff Polarity = iota
	Defendant
)

// Code returns the single-letter tag used in canonical factor strings
func (p Polarity) Code() string {
	if p == Defendant {
		return "D"
	}
	return "P"
}

func (p Polarity) String() string {
	if p == Defendant {
		return "Defendant"
	}
	return "Plaintiff"
}

// Factor is one entry of the fixed factor vocabulary
type Factor struct {
	ID       int      `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Polarity Polarity `json:"polarity" yaml:"polarity"`
}

// String renders the canonical form "F<id> <label> (<P|D>)"
func (f Factor) String() string {
	return fmt.Sprintf("F%d %s (%s)", f.ID, f.Label, f.Polarity.Code())
}

// catalog is ordered by id. F9 is intentionally absent.
var catalog = []Factor{
	{1, "Disclosure-in-negotiations", Defendant},
	{2, "Bribe-employee", Plaintiff},
	{3, "Employee-sole-developer", Defendant},
	{4, "Agreed-not-to-disclose", Plaintiff},
	{5, "Agreement-not-specific", Defendant},
	{6, "Security-measures", Plaintiff},
	{7, "Brought-tools", Plaintiff},
	{8, "Competitive-advantage", Plaintiff},
	{10, "Secrets-disclosed-outsiders", Defendant},
	{11, "Vertical-knowledge", Defendant},
	{12, "Outsider-disclosures-restricted", Plaintiff},
	{13, "Noncompetition-agreement", Plaintiff},
	{14, "Restricted-materials-used", Plaintiff},
	{15, "Unique-product", Plaintiff},
	{16, "Info-reverse-engineerable", Defendant},
	{17, "Info-independently-generated", Defendant},
	{18, "Identical-products", Plaintiff},
	{19, "No-security-measures", Defendant},
	{20, "Info-known-to-competitors", Defendant},
	{21, "Knew-info-confidential", Plaintiff},
	{22, "Invasive-techniques", Plaintiff},
	{23, "Waiver-of-confidentiality", Defendant},
	{24, "Info-obtainable-elsewhere", Defendant},
	{25, "Info-reverse-engineered", Defendant},
	{26, "Deception", Plaintiff},
	{27, "Disclosure-in-public-forum", Defendant},
}

var catalogByID = func() map[int]Factor {
	m := make(map[int]Factor, len(catalog))
	for _, f := range catalog {
		m[f.ID] = f
	}
	return m
}()

// Catalog returns a copy of the factor vocabulary in id order
func Catalog() []Factor {
	out := make([]Factor, len(catalog))
	copy(out, catalog)
	return out
}

// LookupFactor finds a catalog entry by id
func LookupFactor(id int) (Factor, bool) {
	f, ok := catalogByID[id]
	return f, ok
}

var factorIDPattern = regexp.MustCompile(`^F(\d+)`)

// FactorRef is a factor mention recovered from text. ID is 0 when the text
// carries no parseable F<digits> prefix.
type FactorRef struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// ParseFactorRef reads the leading F<digits> of a factor mention
func ParseFactorRef(text string) FactorRef {
	text = strings.TrimSpace(text)
	ref := FactorRef{Text: text}
	if m := factorIDPattern.FindStringSubmatch(text); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil {
			ref.ID = id
		}
	}
	return ref
}

// Key is the identity used when comparing ground truth against claims
func (r FactorRef) Key() string {
	if r.ID > 0 {
		return "F" + strconv.Itoa(r.ID)
	}
	return "text:" + strings.ToLower(strings.Join(strings.Fields(r.Text), " "))
}

// Catalog returns the catalog entry the reference points at
func (r FactorRef) Catalog() (Factor, bool) {
	if r.ID == 0 {
		return Factor{}, false
	}
	return LookupFactor(r.ID)
}
