package pipeline

import (
	"github.com/ppiankov/casebench/internal/extract"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/score"
)

// RowEvaluation is the parsed ground truth, the recovered claim and the score
// of one row
type RowEvaluation struct {
	Actual model.ParsedCaseFactors    `json:"actual"`
	Claim  model.DistilledFactorClaim `json:"claim"`
	Score  model.ScoreRecord          `json:"score"`
}

// Evaluation is the scored batch
type Evaluation struct {
	Rows   []RowEvaluation       `json:"rows"`
	Report model.AggregateReport `json:"report"`

	// Unreadable counts rows whose distiller answer held no usable object
	Unreadable int `json:"unreadable"`
}

// Evaluate parses and scores every row under one generation mode
func Evaluate(rows []model.ScoringRow, mode model.GenerationMode) Evaluation {
	caseParser := extract.NewCaseFactorParser()
	claimParser := extract.NewClaimParser()
	scorer := score.NewScorer()
	agg := score.NewAggregator(mode)

	eval := Evaluation{Rows: make([]RowEvaluation, 0, len(rows))}
	for _, row := range rows {
		actual := caseParser.Parse(row.Scenario)
		claim := claimParser.Parse(row.DistilledFactors)
		record := scorer.Row(actual, claim, mode)

		switch claim.Diagnostic.Status {
		case model.ClaimUnparseable, model.ClaimNoKeys:
			eval.Unreadable++
		}

		agg.Add(record)
		eval.Rows = append(eval.Rows, RowEvaluation{Actual: actual, Claim: claim, Score: record})
	}

	eval.Report = agg.Report()
	return eval
}
