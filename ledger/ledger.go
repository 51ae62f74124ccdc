// Package ledger adapts the external complaint ledger behind the four
// operations the rest of the server is allowed to perform: create a
// complaint, list all complaints, change a status, submit a review. The
// ledger owns the durable records; everything returned from here is a
// read-only projection.
package ledger

import (
	"context"
	"errors"

	"hostel-complaint-server/models"
)

var (
	// ErrUnavailable is returned for any transport or storage failure while
	// reaching the ledger. Callers decide whether to retry; this package
	// never does.
	ErrUnavailable = errors.New("ledger unavailable")

	// ErrNotFound is returned when the ledger has no complaint with the
	// requested id.
	ErrNotFound = errors.New("complaint not found")
)

// Client is the narrow contract against the complaint ledger. All calls are
// synchronous round-trips; the caller's context carries the timeout.
type Client interface {
	// Create appends a new complaint and returns the ledger-assigned id.
	Create(ctx context.Context, submitter string, req models.ComplaintCreate) (uint64, error)

	// ListAll returns every complaint on the ledger, ordered by ascending id.
	ListAll(ctx context.Context) ([]models.Complaint, error)

	// SetStatus changes a complaint's status on behalf of actingIdentity.
	SetStatus(ctx context.Context, id uint64, status models.ComplaintStatus, actingIdentity string) error

	// SubmitReview records the submitter's verdict on a completed complaint.
	// An unsatisfied review appends the feedback and reopens the complaint;
	// a satisfied one is a terminal acknowledgment.
	SubmitReview(ctx context.Context, id uint64, satisfied bool, feedback string, actingIdentity string) error
}
