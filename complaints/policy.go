package complaints

import (
	"strings"

	"hostel-complaint-server/models"
)

// transitionEdge is one legal status change.
type transitionEdge struct {
	from models.ComplaintStatus
	to   models.ComplaintStatus
}

// legalTransitions is the full lifecycle table. Staff may only push work
// forward: completed complaints never leave Completed through this path (a
// reopen happens only through an unsatisfied review).
var legalTransitions = map[transitionEdge]bool{
	{models.StatusPending, models.StatusInProgress}:   true,
	{models.StatusPending, models.StatusCompleted}:    true,
	{models.StatusInProgress, models.StatusCompleted}: true,
}

// CanTransition reports whether role may move a complaint from current to
// target. Occupants can never transition; same-state changes are illegal.
func CanTransition(current, target models.ComplaintStatus, role models.UserRole) bool {
	if role != models.RoleLowerAdmin && role != models.RoleHigherAdmin {
		return false
	}
	return legalTransitions[transitionEdge{current, target}]
}

// AvailableTransitions lists the target statuses role may move a complaint in
// the given status to. The same table drives both this list and the legality
// check, so the actions shown to staff always match what the coordinator
// accepts.
func AvailableTransitions(current models.ComplaintStatus, role models.UserRole) []models.ComplaintStatus {
	var targets []models.ComplaintStatus
	for _, target := range []models.ComplaintStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		if CanTransition(current, target, role) {
			targets = append(targets, target)
		}
	}
	return targets
}

// ReviewEligibility decides whether requester may review the complaint.
// Returns nil when a review is allowed, otherwise the policy rejection:
// ErrNotReviewable unless the complaint is Completed and was filed by the
// requester, ErrAlreadyReviewed when the completed record already carries
// feedback.
func ReviewEligibility(c *models.Complaint, requester string) error {
	if c.Status != models.StatusCompleted {
		return ErrNotReviewable
	}
	if !strings.EqualFold(c.Submitter, requester) {
		return ErrNotReviewable
	}
	// Completed with feedback on record is closed-with-history: the last
	// feedback is shown to the submitter and no further review is offered.
	if len(c.Feedbacks) > 0 {
		return ErrAlreadyReviewed
	}
	return nil
}

// CanReview is the boolean form of ReviewEligibility, used when building the
// per-complaint action list for the presentation layer.
func CanReview(c *models.Complaint, requester string) bool {
	return ReviewEligibility(c, requester) == nil
}
