package models

// ComplaintStatus mirrors the ledger's numeric status codes. The order is
// meaningful: Pending < InProgress < Completed is the sort order for
// status-sorted queues.
type ComplaintStatus uint8

const (
	StatusPending    ComplaintStatus = 0
	StatusInProgress ComplaintStatus = 1
	StatusCompleted  ComplaintStatus = 2
)

// IsValid reports whether the status is one of the three ledger codes.
func (s ComplaintStatus) IsValid() bool {
	return s <= StatusCompleted
}

// Label returns the display name used by the frontend badges.
func (s ComplaintStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Complaint is a read-only projection of a ledger record. The ledger assigns
// id at creation; id, submitter and timestamp never change afterwards, and
// feedbacks only grows.
type Complaint struct {
	ID        uint64          `json:"id"`
	Submitter string          `json:"submitter"`
	Text      string          `json:"text"`
	Category  string          `json:"category"`
	BlockName string          `json:"block_name"`
	FloorNo   int             `json:"floor_no"`
	RoomNo    string          `json:"room_no,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Status    ComplaintStatus `json:"status"`
	Feedbacks []string        `json:"feedbacks"`
}

// LastFeedback returns the most recent feedback entry, or "" when none exists.
func (c *Complaint) LastFeedback() string {
	if len(c.Feedbacks) == 0 {
		return ""
	}
	return c.Feedbacks[len(c.Feedbacks)-1]
}

// ComplaintCreate is the request body for filing a complaint.
type ComplaintCreate struct {
	Text      string `json:"text" binding:"required"`
	Category  string `json:"category" binding:"required"`
	BlockName string `json:"block_name" binding:"required"`
	FloorNo   int    `json:"floor_no"`
	RoomNo    string `json:"room_no"`
}

// TransitionRequest is the request body for a staff status change.
type TransitionRequest struct {
	TargetStatus ComplaintStatus `json:"target_status"`
}

// ReviewRequest is the request body for a submitter's post-resolution review.
// Feedback is mandatory when Satisfied is false.
type ReviewRequest struct {
	Satisfied bool   `json:"satisfied"`
	Feedback  string `json:"feedback"`
}

// ComplaintView is a Complaint plus the actions the policy allows the current
// caller to take on it. Handed verbatim to the presentation layer.
type ComplaintView struct {
	Complaint
	StatusLabel        string            `json:"status_label"`
	AllowedTransitions []ComplaintStatus `json:"allowed_transitions,omitempty"`
	CanReview          bool              `json:"can_review,omitempty"`
	LastFeedbackEntry  string            `json:"last_feedback,omitempty"`
}
