package jobs

// Buckets partitions job display names by outcome. Each slice holds names
// in input-encounter order; display sorting is the renderer's concern.
// Other entries carry the raw conclusion as "name:raw".
type Buckets struct {
	Success   []string `json:"success,omitempty"`
	Failure   []string `json:"failure,omitempty"`
	Cancelled []string `json:"cancelled,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
	TimedOut  []string `json:"timed_out,omitempty"`
	Other     []string `json:"other,omitempty"`
}

// Classify partitions records into outcome buckets. It is a pure function:
// an empty input yields all-empty buckets and no error.
func Classify(records []Record) Buckets {
	var b Buckets
	for _, rec := range records {
		switch rec.Outcome {
		case Success:
			b.Success = append(b.Success, rec.Name)
		case Failure:
			b.Failure = append(b.Failure, rec.Name)
		case Cancelled:
			b.Cancelled = append(b.Cancelled, rec.Name)
		case Skipped:
			b.Skipped = append(b.Skipped, rec.Name)
		case TimedOut:
			b.TimedOut = append(b.TimedOut, rec.Name)
		default:
			b.Other = append(b.Other, rec.Name+":"+rec.Raw)
		}
	}
	return b
}

// OverallStatus is the single aggregated result of a workflow run.
type OverallStatus string

const (
	OverallSuccess OverallStatus = "success"
	OverallFailure OverallStatus = "failure"
	OverallMixed   OverallStatus = "mixed"
	OverallUnknown OverallStatus = "unknown"
)

// Overall reduces the buckets to one status: any failure or timeout means
// failure; successes alongside cancelled/skipped/other entries mean mixed;
// only successes mean success; anything else is unknown.
func (b Buckets) Overall() OverallStatus {
	if len(b.Failure) > 0 || len(b.TimedOut) > 0 {
		return OverallFailure
	}
	hasSuccess := len(b.Success) > 0
	hasNonSuccess := len(b.Cancelled) > 0 || len(b.Skipped) > 0 || len(b.Other) > 0
	switch {
	case hasSuccess && hasNonSuccess:
		return OverallMixed
	case hasSuccess:
		return OverallSuccess
	default:
		return OverallUnknown
	}
}

// Blocking counts the entries that should fail the calling pipeline.
// Failed, timed out, cancelled, and other-status jobs always block; skipped
// jobs block only when failOnSkipped is set.
func (b Buckets) Blocking(failOnSkipped bool) int {
	n := len(b.Failure) + len(b.TimedOut) + len(b.Cancelled) + len(b.Other)
	if failOnSkipped {
		n += len(b.Skipped)
	}
	return n
}
