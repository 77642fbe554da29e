// Package audit persists dispatch reports.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
)

// Entry is one recorded dispatch
type Entry struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	RequestID  string         `json:"request_id"`
	Commander  string         `json:"commander,omitempty"`
	Command    string         `json:"command"`
	Arguments  []string       `json:"arguments,omitempty"`
	Handled    bool           `json:"handled"`
	Feedback   string         `json:"feedback"`
	Message    string         `json:"message"`
	Error      string         `json:"error,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Results    []ActionRecord `json:"results,omitempty"`
}

// ActionRecord is the stored outcome of one action
type ActionRecord struct {
	Action     string `json:"action"`
	Succeeded  bool   `json:"succeeded"`
	Value      string `json:"value,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Filter selects entries
type Filter struct {
	Commander string
	Command   string
	Feedback  string
	Since     time.Time
	Limit     int
	Offset    int
}

// Store persists entries
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Recent(ctx context.Context, n int) ([]*Entry, error)
	Stats(ctx context.Context) (map[string]int64, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// FromReport converts a dispatch report into an entry
func FromReport(report engine.Report) *Entry {
	entry := &Entry{
		ID:         newID(),
		Timestamp:  report.Timestamp,
		RequestID:  report.RequestID,
		Commander:  report.Commander,
		Command:    report.Command,
		Arguments:  append([]string(nil), report.Arguments...),
		Handled:    report.Handled,
		Feedback:   report.Feedback.String(),
		Message:    report.Message,
		DurationMS: report.Duration.Milliseconds(),
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if report.Err != nil {
		entry.Error = report.Err.Error()
	}
	if report.Capture != nil {
		for _, r := range report.Capture.Results() {
			rec := ActionRecord{
				Action:     r.Action,
				Succeeded:  r.Succeeded(),
				DurationMS: r.Duration.Milliseconds(),
			}
			if r.Value != nil {
				rec.Value = fmt.Sprint(r.Value)
			}
			if r.Err != nil {
				rec.Error = r.Err.Error()
			}
			entry.Results = append(entry.Results, rec)
		}
	}
	return entry
}

// Sink adapts a Store to the engine feedback channel
func Sink(store Store) engine.Feedback {
	return engine.FeedbackFunc(func(ctx context.Context, report engine.Report) error {
		return store.Record(ctx, FromReport(report))
	})
}
