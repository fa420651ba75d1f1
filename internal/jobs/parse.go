package jobs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedInputError reports input that does not parse as JSON at all.
// Valid JSON in an unrecognized shape is not an error; it degrades to zero
// records.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("input is not valid JSON: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Options controls parsing behaviour.
type Options struct {
	// IncludeUmbrellaJobs keeps self-referential "Status" aggregation jobs
	// in the output instead of dropping them.
	IncludeUmbrellaJobs bool
	// IgnoreJobs lists job names to drop. Names are normalized the same way
	// as input names and compared case-insensitively.
	IgnoreJobs []string
}

// jobDescriptor mirrors one element of the GitHub jobs API array.
type jobDescriptor struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
}

// needsEntry mirrors one value of a toJson(needs) mapping.
type needsEntry struct {
	Result     string `json:"result"`
	Conclusion string `json:"conclusion"`
}

// Parse normalizes a raw JSON document into an ordered list of job records.
//
// Two input shapes are supported: the GitHub jobs API envelope
// ({"jobs": [{"name": ..., "conclusion": ...}, ...]}) and a toJson(needs)
// mapping ({"job_id": {"result": ...}, ...}). A document that is valid JSON
// but matches neither shape yields zero records rather than an error.
func Parse(raw string, opts Options) ([]Record, error) {
	var top json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, &MalformedInputError{Err: err}
	}

	pairs := extractAPIJobs(top)
	if pairs == nil {
		pairs = extractNeedsJobs(top)
	}

	ignored := make(map[string]struct{}, len(opts.IgnoreJobs))
	for _, name := range opts.IgnoreJobs {
		name = NormalizeName(name)
		if name == "" {
			continue
		}
		ignored[strings.ToLower(name)] = struct{}{}
	}

	records := make([]Record, 0, len(pairs))
	for _, p := range pairs {
		name := NormalizeName(p.name)
		if name == "" {
			continue
		}
		if !opts.IncludeUmbrellaJobs && isUmbrellaJob(name) {
			continue
		}
		if _, skip := ignored[strings.ToLower(name)]; skip {
			continue
		}

		result := p.result
		if result == "" {
			result = "unknown"
		}
		rec := Record{Name: name, Outcome: classifyOutcome(result)}
		if rec.Outcome == Other {
			rec.Raw = result
		}
		records = append(records, rec)
	}
	return records, nil
}

type rawPair struct {
	name   string
	result string
}

// extractAPIJobs pulls (name, conclusion) pairs from the jobs API envelope.
// Returns nil when the document does not carry a "jobs" array. Jobs whose
// status field says they have not completed are excluded; they have no
// stable conclusion yet and would otherwise show up as unknown.
func extractAPIJobs(top json.RawMessage) []rawPair {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(top, &envelope); err != nil {
		return nil
	}
	rawJobs, ok := envelope["jobs"]
	if !ok {
		return nil
	}
	// "jobs" must be an array; anything else (including null) falls back
	// to the needs-mapping shape.
	var descriptors []jobDescriptor
	if err := json.Unmarshal(rawJobs, &descriptors); err != nil || string(rawJobs) == "null" {
		return nil
	}

	pairs := make([]rawPair, 0, len(descriptors))
	for _, job := range descriptors {
		if job.Status != "" && job.Status != "completed" {
			continue
		}
		result := job.Conclusion
		if result == "" {
			result = "unknown"
		}
		pairs = append(pairs, rawPair{name: job.Name, result: result})
	}
	return pairs
}

// extractNeedsJobs pulls (job_id, result) pairs from a toJson(needs)
// mapping. The document is walked token by token so records come out in
// document order. Returns an empty slice for any non-object document.
func extractNeedsJobs(top json.RawMessage) []rawPair {
	dec := json.NewDecoder(strings.NewReader(string(top)))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var pairs []rawPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return pairs
		}
		key, ok := keyTok.(string)
		if !ok {
			return pairs
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return pairs
		}

		result := "unknown"
		var entry needsEntry
		if err := json.Unmarshal(value, &entry); err == nil {
			if entry.Result != "" {
				result = entry.Result
			} else if entry.Conclusion != "" {
				result = entry.Conclusion
			}
		}
		pairs = append(pairs, rawPair{name: key, result: result})
	}
	return pairs
}

// NormalizeName converts a raw job name to its canonical display form:
// grouped names like "build / unit-tests" keep only the rightmost segment,
// and surrounding whitespace is trimmed.
func NormalizeName(raw string) string {
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}
	return strings.TrimSpace(raw)
}

// isUmbrellaJob reports whether a normalized name belongs to a
// self-referential aggregation job: one that equals or ends with "Status",
// or a Slack notifier job, compared case-insensitively.
func isUmbrellaJob(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "status") || strings.HasPrefix(lower, "slack")
}
