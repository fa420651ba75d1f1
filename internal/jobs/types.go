package jobs

// Outcome is the terminal result of a single CI job.
type Outcome int

const (
	// Success is the canonical "success" conclusion.
	Success Outcome = iota
	// Failure is the canonical "failure" conclusion.
	Failure
	// Cancelled is the canonical "cancelled" conclusion.
	Cancelled
	// Skipped is the canonical "skipped" conclusion.
	Skipped
	// TimedOut is the canonical "timed_out" conclusion.
	TimedOut
	// Other covers every conclusion string the canonical set does not name.
	// The raw string is kept on the Record for display.
	Other
)

// Record is one normalized job with its classified outcome. Duplicate names
// are legal (matrix fan-out) and bucketed independently.
type Record struct {
	Name    string
	Outcome Outcome
	// Raw holds the original conclusion string when Outcome is Other.
	Raw string
}

// classifyOutcome maps a raw conclusion string to an Outcome. Matching is
// exact and case-sensitive; anything unrecognized is Other.
func classifyOutcome(raw string) Outcome {
	switch raw {
	case "success":
		return Success
	case "failure":
		return Failure
	case "cancelled":
		return Cancelled
	case "skipped":
		return Skipped
	case "timed_out":
		return TimedOut
	default:
		return Other
	}
}
