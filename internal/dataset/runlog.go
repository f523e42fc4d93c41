package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/casebench/internal/model"
)

// RunLogFileName names the JSON log of one run started at t
func RunLogFileName(t time.Time) string {
	return "factor_responses_" + t.Format("20060102_150405") + ".json"
}

// RunLog is an append-only JSON array of run records. The whole file is
// rewritten after each append so an interrupted run leaves a valid log.
type RunLog struct {
	path    string
	mu      sync.Mutex
	records []model.RunRecord
	now     func() time.Time
}

// NewRunLog creates an empty log that will be written to path
func NewRunLog(path string) *RunLog {
	return &RunLog{path: path, now: time.Now}
}

// OpenRunLog loads an existing log, or starts an empty one if path is missing
func OpenRunLog(path string) (*RunLog, error) {
	l := NewRunLog(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read run log: %w", err)
	}
	if len(data) == 0 {
		return l, nil
	}
	if err := json.Unmarshal(data, &l.records); err != nil {
		return nil, fmt.Errorf("parse run log: %w", err)
	}
	return l, nil
}

// Path returns the file the log is written to
func (l *RunLog) Path() string {
	return l.path
}

// Append stamps rec with a run id and timestamp when missing, adds it and
// rewrites the log file
func (l *RunLog) Append(rec model.RunRecord) (model.RunRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now().UTC()
	}

	l.records = append(l.records, rec)
	if err := l.flushLocked(); err != nil {
		return rec, err
	}
	return rec, nil
}

// Records returns a copy of the logged records in append order
func (l *RunLog) Records() []model.RunRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.RunRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len is the number of logged records
func (l *RunLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// ExportCSV writes the scenario/argument/distilled_factors table
func (l *RunLog) ExportCSV(w io.Writer) error {
	records := l.Records()

	rows := make([]model.ScoringRow, len(records))
	for i, rec := range records {
		rows[i] = rec.ScoringRow()
	}
	return WriteScoringRows(w, rows)
}

// ExportCSVFile writes the exported table to path
func (l *RunLog) ExportCSVFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := l.ExportCSV(f); err != nil {
		return fmt.Errorf("export run log: %w", err)
	}
	return f.Close()
}

// Remove deletes the log file
func (l *RunLog) Remove() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove run log: %w", err)
	}
	return nil
}

func (l *RunLog) flushLocked() error {
	data, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace run log: %w", err)
	}
	return nil
}
