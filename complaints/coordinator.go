package complaints

import (
	"context"
	"strings"
	"time"

	"hostel-complaint-server/ledger"
	"hostel-complaint-server/models"
)

// Actor is the authenticated caller as reported by the identity source. The
// coordinator trusts the claim as given; authentication happened upstream.
type Actor struct {
	Identity string
	Role     models.UserRole
}

// Coordinator composes the ledger client, lifecycle policy, triage
// partitioner and query engine behind the operations the HTTP layer exposes.
// It is stateless across requests: every query recomputes its queue from a
// fresh ledger snapshot, and every write re-reads before returning. The
// ledger is the sole source of truth and may be mutated by callers this
// process never sees, so nothing here caches authoritative state.
type Coordinator struct {
	ledger        ledger.Client
	windowSeconds int64

	// now is injectable for tests; production uses time.Now.
	now func() int64
}

// NewCoordinator builds a coordinator over client with the given fast-lane
// window. A windowSeconds of 0 or less falls back to the 3-day default.
func NewCoordinator(client ledger.Client, windowSeconds int64) *Coordinator {
	if windowSeconds <= 0 {
		windowSeconds = DefaultEscalationWindow
	}
	return &Coordinator{
		ledger:        client,
		windowSeconds: windowSeconds,
		now:           func() int64 { return time.Now().Unix() },
	}
}

// Submit validates and files a new complaint for the actor, then returns the
// assigned id together with the actor's refreshed "my complaints" view.
func (co *Coordinator) Submit(ctx context.Context, actor Actor, req models.ComplaintCreate) (uint64, []models.ComplaintView, error) {
	if err := validateCreate(&req); err != nil {
		return 0, nil, err
	}

	id, err := co.ledger.Create(ctx, actor.Identity, req)
	if err != nil {
		return 0, nil, err
	}

	mine, err := co.ListMine(ctx, actor, QueryParams{})
	if err != nil {
		return 0, nil, err
	}
	return id, mine, nil
}

// ListMine returns the actor's own complaints, filtered and sorted.
func (co *Coordinator) ListMine(ctx context.Context, actor Actor, params QueryParams) ([]models.ComplaintView, error) {
	snapshot, err := co.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	queue := Apply(Mine(snapshot, actor.Identity), params)
	return co.project(queue, actor), nil
}

// ListFastLane returns the first-tier queue: complaints filed within the
// recency window, any status.
func (co *Coordinator) ListFastLane(ctx context.Context, actor Actor, params QueryParams) ([]models.ComplaintView, error) {
	snapshot, err := co.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	queue := Apply(FastLane(snapshot, co.now(), co.windowSeconds), params)
	return co.project(queue, actor), nil
}

// ListEscalation returns the second-tier queue: unresolved complaints older
// than the recency window.
func (co *Coordinator) ListEscalation(ctx context.Context, actor Actor, params QueryParams) ([]models.ComplaintView, error) {
	snapshot, err := co.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	queue := Apply(Escalation(snapshot, co.now(), co.windowSeconds), params)
	return co.project(queue, actor), nil
}

// QueueFor dispatches to the queue the actor's role is entitled to see:
// occupants see their own complaints, lower admins the fast lane, higher
// admins the escalation queue.
func (co *Coordinator) QueueFor(ctx context.Context, actor Actor, params QueryParams) ([]models.ComplaintView, error) {
	switch actor.Role {
	case models.RoleLowerAdmin:
		return co.ListFastLane(ctx, actor, params)
	case models.RoleHigherAdmin:
		return co.ListEscalation(ctx, actor, params)
	default:
		return co.ListMine(ctx, actor, params)
	}
}

// ApplyTransition validates the requested status change against the
// lifecycle policy using the state the actor observed, applies it on the
// ledger, then re-reads and returns the actor's refreshed queue. Two staff
// members racing on the same complaint both validate against their own
// snapshot; the ledger's last write wins.
func (co *Coordinator) ApplyTransition(ctx context.Context, actor Actor, id uint64, target models.ComplaintStatus) ([]models.ComplaintView, error) {
	if !target.IsValid() {
		return nil, &ValidationError{Field: "target_status", Reason: "unknown status code"}
	}

	current, err := co.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, target, actor.Role) {
		return nil, ErrIllegalTransition
	}

	if err := co.ledger.SetStatus(ctx, id, target, actor.Identity); err != nil {
		return nil, err
	}

	return co.QueueFor(ctx, actor, QueryParams{})
}

// ApplyReview records the submitter's verdict on a completed complaint. A
// satisfied review is a terminal acknowledgment and changes nothing; an
// unsatisfied one must carry feedback, which the ledger appends while
// demoting the complaint back to InProgress.
func (co *Coordinator) ApplyReview(ctx context.Context, actor Actor, id uint64, satisfied bool, feedback string) ([]models.ComplaintView, error) {
	current, err := co.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ReviewEligibility(current, actor.Identity); err != nil {
		return nil, err
	}
	if !satisfied && strings.TrimSpace(feedback) == "" {
		return nil, ErrFeedbackRequired
	}

	if err := co.ledger.SubmitReview(ctx, id, satisfied, feedback, actor.Identity); err != nil {
		return nil, err
	}

	return co.ListMine(ctx, actor, QueryParams{})
}

// find fetches a fresh snapshot and locates the complaint by id.
func (co *Coordinator) find(ctx context.Context, id uint64) (*models.Complaint, error) {
	snapshot, err := co.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshot {
		if snapshot[i].ID == id {
			return &snapshot[i], nil
		}
	}
	return nil, ledger.ErrNotFound
}

// project decorates a queue with the actions the policy allows the actor to
// take on each complaint, so the presentation layer never re-derives policy.
func (co *Coordinator) project(queue []models.Complaint, actor Actor) []models.ComplaintView {
	views := make([]models.ComplaintView, 0, len(queue))
	for i := range queue {
		c := queue[i]
		view := models.ComplaintView{
			Complaint:         c,
			StatusLabel:       c.Status.Label(),
			LastFeedbackEntry: c.LastFeedback(),
		}
		if actor.Role == models.RoleLowerAdmin || actor.Role == models.RoleHigherAdmin {
			view.AllowedTransitions = AvailableTransitions(c.Status, actor.Role)
		} else {
			view.CanReview = CanReview(&c, actor.Identity)
		}
		views = append(views, view)
	}
	return views
}

// validateCreate rejects malformed submissions before any ledger call.
func validateCreate(req *models.ComplaintCreate) error {
	req.Text = strings.TrimSpace(req.Text)
	req.Category = strings.TrimSpace(req.Category)
	req.BlockName = strings.TrimSpace(req.BlockName)
	req.RoomNo = strings.TrimSpace(req.RoomNo)

	if req.Text == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if req.Category == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if req.BlockName == "" {
		return &ValidationError{Field: "block_name", Reason: "must not be empty"}
	}
	if req.FloorNo < 0 {
		return &ValidationError{Field: "floor_no", Reason: "must not be negative"}
	}
	return nil
}
