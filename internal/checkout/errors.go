package checkout

import (
	"fmt"

	"jewelkart/internal/stock"

	"github.com/google/uuid"
)

// ValidationError reports stock violations found before anything external
// was touched. Retryable: the customer can adjust quantities and try again.
type ValidationError struct {
	Violations []stock.Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout rejected: %d line(s) exceed available stock", len(e.Violations))
}

// PaymentError reports a declined or failed authorization. Nothing was
// mutated; the customer can retry with another card.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment authorization failed: %v", e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// CommitError reports a failure after payment was captured. This is the one
// outcome that is not locally recoverable: money has been taken and the
// order is not fully recorded, so the attempt is journaled for manual
// reconciliation and the caller must surface it distinctly from the
// retryable failures.
type CommitError struct {
	OrderID uuid.UUID
	Err     error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("checkout commit failed for order %s: %v", e.OrderID, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
