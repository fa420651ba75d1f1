package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lupaxa/checkjobs/internal/jobs"
	"github.com/lupaxa/checkjobs/internal/meta"
)

// PrettyRenderer renders the report for a human terminal.
type PrettyRenderer struct {
	out    io.Writer
	styles prettyStyles
}

type prettyStyles struct {
	title   lipgloss.Style
	heading map[string]lipgloss.Style
	bullet  lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	bold := lipgloss.NewStyle().Bold(true)
	return &PrettyRenderer{
		out: out,
		styles: prettyStyles{
			title: bold.Underline(true),
			heading: map[string]lipgloss.Style{
				"Successful jobs": bold.Foreground(lipgloss.Color("2")),
				"Failed jobs":     bold.Foreground(lipgloss.Color("1")),
				"Timed out jobs":  bold.Foreground(lipgloss.Color("1")),
				"Cancelled jobs":  bold.Foreground(lipgloss.Color("3")),
				"Skipped jobs":    bold.Foreground(lipgloss.Color("3")),
				"Other statuses":  bold.Foreground(lipgloss.Color("5")),
			},
			bullet: lipgloss.NewStyle().PaddingLeft(2),
			label:  bold,
			muted:  lipgloss.NewStyle().Faint(true),
		},
	}
}

// Render writes the bucket sections and a compact metadata block.
func (r *PrettyRenderer) Render(b jobs.Buckets, m meta.RunMetadata) error {
	w := &stickyWriter{out: r.out}

	w.printf("%s\n\n", r.styles.title.Render("Job Status Overview"))

	for _, s := range sections(b) {
		heading, ok := r.styles.heading[s.Title]
		if !ok {
			heading = r.styles.label
		}
		w.printf("%s\n", heading.Render(s.Title))
		for _, name := range s.Entries {
			w.printf("%s\n", r.styles.bullet.Render("- "+name))
		}
		w.printf("\n")
	}

	r.metadataLine(w, "Repository", m.Repository)
	r.metadataLine(w, "Workflow", m.Workflow)
	if m.RunNumber != "" {
		r.metadataLine(w, "Run", fmt.Sprintf("#%s (attempt %s)", m.RunNumber, m.RunAttempt))
	}
	r.metadataLine(w, "Event", m.EventName)
	r.metadataLine(w, "Actor", m.Actor)
	if m.TriggeringActor != "" && m.TriggeringActor != m.Actor {
		r.metadataLine(w, "Triggering actor", m.TriggeringActor)
	}
	r.metadataLine(w, "Ref", m.RefName)
	r.metadataLine(w, "Commit SHA", m.SHA)
	r.metadataLine(w, "Commit message", m.CommitMessage)
	r.metadataLine(w, "Run URL", m.RunURL())
	if m.PRNumber != "" {
		r.metadataLine(w, "PR", fmt.Sprintf("#%s: %s", m.PRNumber, m.PRTitle))
		r.metadataLine(w, "PR URL", m.PRURL())
	}
	w.printf("%s\n", r.styles.muted.Render("Generated at (UTC): "+meta.HumanTimestamp(m.GeneratedAt)))

	return w.err
}

func (r *PrettyRenderer) metadataLine(w *stickyWriter, label, value string) {
	if value == "" {
		return
	}
	w.printf("%s %s\n", r.styles.label.Render(label+":"), value)
}
