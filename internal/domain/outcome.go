package domain

// OutcomeStatus classifies how a dispatch ended.
type OutcomeStatus int

const (
	OutcomeSent OutcomeStatus = iota
	OutcomeSkipped
	OutcomeFailed
)

// Outcome is the result of dispatching one record. Skipped is the
// expected steady state while reconnection proceeds, not an error.
type Outcome struct {
	Status OutcomeStatus
	Reason string
}

func SentOutcome() Outcome {
	return Outcome{Status: OutcomeSent}
}

func SkippedOutcome(reason string) Outcome {
	return Outcome{Status: OutcomeSkipped, Reason: reason}
}

func FailedOutcome(reason string) Outcome {
	return Outcome{Status: OutcomeFailed, Reason: reason}
}

func (o Outcome) String() string {
	switch o.Status {
	case OutcomeSent:
		return "sent"
	case OutcomeSkipped:
		return "skipped: " + o.Reason
	case OutcomeFailed:
		return "failed: " + o.Reason
	default:
		return "unknown"
	}
}
