package output

import (
	"fmt"
	"io"

	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
)

// MarkdownRenderer produces the job status overview document posted to the
// step summary surface.
type MarkdownRenderer struct {
	out io.Writer
}

// NewMarkdown creates a MarkdownRenderer writing to the provided writer.
func NewMarkdown(out io.Writer) *MarkdownRenderer {
	return &MarkdownRenderer{out: out}
}

// Render writes the full report: one section per non-empty bucket in fixed
// priority order, followed by the workflow metadata table. Output is a pure
// function of its arguments.
func (r *MarkdownRenderer) Render(b jobs.Buckets, m meta.RunMetadata) error {
	w := &stickyWriter{out: r.out}

	w.printf("## Job Status Overview\n\n")

	for _, s := range sections(b) {
		w.printf("### %s\n", s.Title)
		for _, name := range s.Entries {
			w.printf("- %s\n", name)
		}
		w.printf("\n")
	}

	w.printf("### Workflow metadata\n\n")
	w.printf("| Field  | Value   |\n")
	w.printf("| :----- | :------ |\n")
	w.printf("| Repository | %s |\n", m.Repository)
	w.printf("| Workflow | %s |\n", m.Workflow)
	w.printf("| Run number | #%s |\n", m.RunNumber)
	w.printf("| Attempt | %s |\n", m.RunAttempt)
	w.printf("| Event | %s |\n", m.EventName)
	w.printf("| Actor | %s |\n", m.Actor)
	if m.TriggeringActor != "" && m.TriggeringActor != m.Actor {
		w.printf("| Triggering actor | %s |\n", m.TriggeringActor)
	}
	w.printf("| Ref | %s |\n", m.RefName)
	w.printf("| Commit SHA | %s |\n", m.SHA)
	if m.CommitMessage != "" {
		w.printf("| Commit Message | %s |\n", m.CommitMessage)
	}
	if url := m.RunURL(); url != "" {
		w.printf("| Run URL | %s |\n", url)
	}
	if m.PRNumber != "" {
		w.printf("| PR | #%s: %s |\n", m.PRNumber, m.PRTitle)
		if url := m.PRURL(); url != "" {
			w.printf("| PR URL | %s |\n", url)
		}
	}
	w.printf("| Generated at (UTC) | %s |\n\n", meta.HumanTimestampSup(m.GeneratedAt))

	return w.err
}

// stickyWriter keeps the first write error so rendering code stays linear.
type stickyWriter struct {
	out io.Writer
	err error
}

func (w *stickyWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}
