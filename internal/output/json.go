package output

import (
	"encoding/json"
	"io"

	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
)

// JSONRenderer emits the report as machine-readable JSON.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures the JSON output schema. Bucket entries are emitted in
// display order, matching the other renderers.
type Report struct {
	Overall jobs.OverallStatus `json:"overall"`
	Buckets jobs.Buckets       `json:"buckets"`
	Meta    reportMeta         `json:"metadata"`
}

type reportMeta struct {
	Repository      string `json:"repository,omitempty"`
	Workflow        string `json:"workflow,omitempty"`
	RunID           string `json:"run_id,omitempty"`
	RunNumber       string `json:"run_number,omitempty"`
	RunAttempt      string `json:"run_attempt,omitempty"`
	Event           string `json:"event,omitempty"`
	Actor           string `json:"actor,omitempty"`
	TriggeringActor string `json:"triggering_actor,omitempty"`
	Ref             string `json:"ref,omitempty"`
	SHA             string `json:"sha,omitempty"`
	CommitMessage   string `json:"commit_message,omitempty"`
	RunURL          string `json:"run_url,omitempty"`
	PRNumber        string `json:"pr_number,omitempty"`
	PRTitle         string `json:"pr_title,omitempty"`
	PRURL           string `json:"pr_url,omitempty"`
	GeneratedAt     string `json:"generated_at"`
}

// Render encodes the report as indented JSON.
func (j *JSONRenderer) Render(b jobs.Buckets, m meta.RunMetadata) error {
	report := Report{
		Overall: b.Overall(),
		Buckets: jobs.Buckets{
			Success:   SortEntries(b.Success),
			Failure:   SortEntries(b.Failure),
			Cancelled: SortEntries(b.Cancelled),
			Skipped:   SortEntries(b.Skipped),
			TimedOut:  SortEntries(b.TimedOut),
			Other:     SortEntries(b.Other),
		},
		Meta: reportMeta{
			Repository:      m.Repository,
			Workflow:        m.Workflow,
			RunID:           m.RunID,
			RunNumber:       m.RunNumber,
			RunAttempt:      m.RunAttempt,
			Event:           m.EventName,
			Actor:           m.Actor,
			TriggeringActor: m.TriggeringActor,
			Ref:             m.RefName,
			SHA:             m.SHA,
			CommitMessage:   m.CommitMessage,
			RunURL:          m.RunURL(),
			PRNumber:        m.PRNumber,
			PRTitle:         m.PRTitle,
			PRURL:           m.PRURL(),
			GeneratedAt:     m.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}

	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
