package model

// SectionCounts holds a per-section diff count plus the section totals
type SectionCounts struct {
	Input int `json:"input"`
	TSC1  int `json:"tsc1"`
	TSC2  int `json:"tsc2"`

	TotalActual  int `json:"total_actual"`  // ground-truth factors across sections
	TotalClaimed int `json:"total_claimed"` // claimed factors across sections
}

// Sum adds up the per-section counts
func (c SectionCounts) Sum() int {
	return c.Input + c.TSC1 + c.TSC2
}

// Set stores the count for a section
func (c *SectionCounts) Set(s Section, n int) {
	switch s {
	case SectionTSC1:
		c.TSC1 = n
	case SectionTSC2:
		c.TSC2 = n
	default:
		c.Input = n
	}
}

// ScoreRecord is the score of a single row. Accuracy and Strength are ratios
// in [0,1]; aggregation reports them as percentages.
type ScoreRecord struct {
	Accuracy               float64 `json:"accuracy"`
	Strength               float64 `json:"strength"`
	TotalFactors           int     `json:"total_factors"`
	OriginalFactorCount    int     `json:"original_factor_count"`
	DistilledFactorCount   int     `json:"distilled_factor_count"`
	MismatchCount          int     `json:"mismatch_count"`
	WeaknessCount          int     `json:"weakness_count"`
	IsSuccessfulAbstention bool    `json:"is_successful_abstention"`

	Mismatches SectionCounts `json:"mismatches"`
	Weaknesses SectionCounts `json:"weaknesses"`
}

// AggregateReport summarizes a batch of rows scored under one mode
type AggregateReport struct {
	Mode GenerationMode `json:"-"`

	Rows                 int     `json:"rows"`
	MeanAccuracyPct      float64 `json:"accuracy"`
	MeanStrengthPct      float64 `json:"strength"`
	TotalFactors         int     `json:"total_factors"`
	OriginalFactors      int     `json:"original_factors"`
	DistilledFactors     int     `json:"distilled_factors"`
	TotalMismatches      int     `json:"total_mismatches"`
	TotalWeaknesses      int     `json:"total_weaknesses"`
	SuccessfulAbstention int     `json:"successful_abstention_count"`

	// AbstentionRatioPct is only meaningful when HasAbstention is set
	AbstentionRatioPct float64 `json:"successful_abstention_ratio,omitempty"`
	HasAbstention      bool    `json:"-"`
}
