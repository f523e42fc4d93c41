package model

import "time"

// RunRecord is one scenario sent through the argument and distiller models
type RunRecord struct {
	RunID            string    `json:"run_id"`
	Timestamp        time.Time `json:"timestamp"`
	Scenario         string    `json:"scenario"`
	Argument         string    `json:"argument"`
	DistilledFactors string    `json:"distilled_factors"`
}

// ScoringRow is one row handed to the scoring engine
type ScoringRow struct {
	Scenario         string
	Argument         string
	DistilledFactors string
}

// ScoringRow drops the bookkeeping fields of a run record
func (r RunRecord) ScoringRow() ScoringRow {
	return ScoringRow{
		Scenario:         r.Scenario,
		Argument:         r.Argument,
		DistilledFactors: r.DistilledFactors,
	}
}
