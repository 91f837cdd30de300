package checkout

// Stage names a point in the checkout attempt's state machine:
//
//	Idle -> Validating -> (Rejected | Authorizing)
//	     -> (PaymentFailed | Committing) -> (CommitFailed | Completed)
//
// Rejected, PaymentFailed, CommitFailed and Completed are terminal.
type Stage int

const (
	StageIdle Stage = iota
	StageValidating
	StageRejected
	StageAuthorizing
	StagePaymentFailed
	StageCommitting
	StageCommitFailed
	StageCompleted
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageValidating:
		return "Validating"
	case StageRejected:
		return "Rejected"
	case StageAuthorizing:
		return "Authorizing"
	case StagePaymentFailed:
		return "PaymentFailed"
	case StageCommitting:
		return "Committing"
	case StageCommitFailed:
		return "CommitFailed"
	case StageCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
