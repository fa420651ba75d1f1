// Package output renders classified job buckets and run metadata as
// markdown, styled terminal text, or JSON.
package output

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lupaxa/checkjobs/internal/jobs"
)

// section is one labeled, display-ordered bucket of job names.
type section struct {
	Title   string
	Entries []string
}

// displayCollator orders entries case-insensitively and numerically, so
// "Job 2" sorts before "Job 10".
var displayCollator = collate.New(language.Und, collate.IgnoreCase, collate.Numeric)

// SortEntries deduplicates a bucket and sorts it for display. Bucket order
// up to this point is input-encounter order.
func SortEntries(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	displayCollator.SortStrings(out)
	return out
}

// sections lays the buckets out in fixed priority order, dropping empty
// ones so the report never carries "Failed jobs: none" noise.
func sections(b jobs.Buckets) []section {
	all := []section{
		{Title: "Successful jobs", Entries: b.Success},
		{Title: "Failed jobs", Entries: b.Failure},
		{Title: "Timed out jobs", Entries: b.TimedOut},
		{Title: "Cancelled jobs", Entries: b.Cancelled},
		{Title: "Skipped jobs", Entries: b.Skipped},
		{Title: "Other statuses", Entries: b.Other},
	}
	out := make([]section, 0, len(all))
	for _, s := range all {
		if len(s.Entries) == 0 {
			continue
		}
		s.Entries = SortEntries(s.Entries)
		out = append(out, s)
	}
	return out
}
