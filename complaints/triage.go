package complaints

import (
	"strings"

	"hostel-complaint-server/models"
)

// DefaultEscalationWindow is the fast-lane recency window in seconds (3 days).
const DefaultEscalationWindow int64 = 259200

// FastLane returns the complaints filed within the window, any status, in
// snapshot order. This is the first-tier (lower admin) queue; completed
// complaints stay visible so staff can confirm recent closures.
func FastLane(snapshot []models.Complaint, now, windowSeconds int64) []models.Complaint {
	var queue []models.Complaint
	for i := range snapshot {
		if now-snapshot[i].Timestamp <= windowSeconds {
			queue = append(queue, snapshot[i])
		}
	}
	return queue
}

// Escalation returns the unresolved complaints older than the window, in
// snapshot order. This is the second-tier (higher admin) queue; a complaint
// leaves it only by being completed.
func Escalation(snapshot []models.Complaint, now, windowSeconds int64) []models.Complaint {
	var queue []models.Complaint
	for i := range snapshot {
		if now-snapshot[i].Timestamp > windowSeconds && snapshot[i].Status != models.StatusCompleted {
			queue = append(queue, snapshot[i])
		}
	}
	return queue
}

// Mine returns the complaints filed by identity, unfiltered by age. The
// submitter match is case-insensitive because identities are wallet-style
// addresses with no canonical casing.
func Mine(snapshot []models.Complaint, identity string) []models.Complaint {
	var queue []models.Complaint
	for i := range snapshot {
		if strings.EqualFold(snapshot[i].Submitter, identity) {
			queue = append(queue, snapshot[i])
		}
	}
	return queue
}
