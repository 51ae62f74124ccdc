package complaints

import (
	"errors"
	"fmt"
)

// Policy rejections. These are returned verbatim to the caller and are never
// retried; they are distinct from ledger transport failures
// (ledger.ErrUnavailable) which the caller may retry.
var (
	// ErrIllegalTransition rejects a status change the lifecycle table does
	// not allow for the acting role.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrNotReviewable rejects a review on a complaint that is not completed
	// or was not filed by the requester.
	ErrNotReviewable = errors.New("complaint is not reviewable")

	// ErrFeedbackRequired rejects an unsatisfied review that carries no
	// feedback text.
	ErrFeedbackRequired = errors.New("feedback is required for an unsatisfied review")

	// ErrAlreadyReviewed rejects a review on a completed complaint that
	// already carries feedback (closed-with-history).
	ErrAlreadyReviewed = errors.New("complaint has already been reviewed")
)

// ValidationError reports malformed input rejected before any ledger call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
