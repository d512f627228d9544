// Package status defines the fixed commission lifecycle and its stepping
// helpers. The sequence is configuration, not computation: any change to the
// pipeline is an edit to the slice below.
package status

// The seven lifecycle stages, in pipeline order.
const (
	Applying     = "Applying"
	Discussion   = "Discussion"
	DepositPaid  = "Deposit Paid"
	Queued       = "Queued"
	InProduction = "In Production"
	Completed    = "Completed"
	Shipped      = "Shipped"
)

// Default is the initial stage for a newly created commission.
const Default = Applying

var steps = []string{
	Applying,
	Discussion,
	DepositPaid,
	Queued,
	InProduction,
	Completed,
	Shipped,
}

// Dashboard buckets. Stages outside all three are left uncounted.
var (
	queueStages  = map[string]bool{Applying: true, Discussion: true, DepositPaid: true, Queued: true}
	activeStages = map[string]bool{InProduction: true}
	doneStages   = map[string]bool{Completed: true, Shipped: true}
)

// Steps returns the ordered stage sequence. Callers must not mutate it.
func Steps() []string {
	return steps
}

// IndexOf returns the position of stage in the sequence, or -1 if the stage
// is not part of the current pipeline (e.g. a record persisted under an older
// sequence).
func IndexOf(stage string) int {
	for i, s := range steps {
		if s == stage {
			return i
		}
	}
	return -1
}

// Step returns the stage one position forward (+1) or back (-1), clamped at
// both ends of the sequence. Unknown stages and directions other than +-1 are
// a no-op: stepping never produces an out-of-range stage.
func Step(stage string, direction int) string {
	idx := IndexOf(stage)
	if idx < 0 || (direction != 1 && direction != -1) {
		return stage
	}
	next := idx + direction
	if next < 0 || next >= len(steps) {
		return stage
	}
	return steps[next]
}

// ProgressFraction maps a stage to a display fraction in [0,1]. The first
// stage is 0, the last is 1. Unknown stages report 0.
func ProgressFraction(stage string) float64 {
	idx := IndexOf(stage)
	if idx <= 0 {
		return 0
	}
	if idx >= len(steps)-1 {
		return 1
	}
	return float64(idx) / float64(len(steps)-1)
}

// Bucket classifies a stage for dashboard counts: "queue", "active" or
// "done". Unrecognized stages return "" and must not be counted anywhere.
func Bucket(stage string) string {
	switch {
	case queueStages[stage]:
		return "queue"
	case activeStages[stage]:
		return "active"
	case doneStages[stage]:
		return "done"
	default:
		return ""
	}
}
