package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-complaint-server/complaints"
	"hostel-complaint-server/ledger"
	"hostel-complaint-server/models"
	"hostel-complaint-server/routes"
)

// stubLedger is a minimal in-memory ledger.Client for handler tests.
type stubLedger struct {
	records []models.Complaint
	nextID  uint64
	down    bool
}

func (sl *stubLedger) Create(ctx context.Context, submitter string, req models.ComplaintCreate) (uint64, error) {
	if sl.down {
		return 0, ledger.ErrUnavailable
	}
	sl.nextID++
	sl.records = append(sl.records, models.Complaint{
		ID:        sl.nextID,
		Submitter: submitter,
		Text:      req.Text,
		Category:  req.Category,
		BlockName: req.BlockName,
		FloorNo:   req.FloorNo,
		RoomNo:    req.RoomNo,
		Timestamp: time.Now().Unix(),
		Status:    models.StatusPending,
	})
	return sl.nextID, nil
}

func (sl *stubLedger) ListAll(ctx context.Context) ([]models.Complaint, error) {
	if sl.down {
		return nil, ledger.ErrUnavailable
	}
	snapshot := make([]models.Complaint, len(sl.records))
	copy(snapshot, sl.records)
	return snapshot, nil
}

func (sl *stubLedger) SetStatus(ctx context.Context, id uint64, status models.ComplaintStatus, actingIdentity string) error {
	if sl.down {
		return ledger.ErrUnavailable
	}
	for i := range sl.records {
		if sl.records[i].ID == id {
			sl.records[i].Status = status
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (sl *stubLedger) SubmitReview(ctx context.Context, id uint64, satisfied bool, feedback string, actingIdentity string) error {
	if sl.down {
		return ledger.ErrUnavailable
	}
	for i := range sl.records {
		if sl.records[i].ID == id {
			if !satisfied {
				sl.records[i].Feedbacks = append(sl.records[i].Feedbacks, feedback)
				sl.records[i].Status = models.StatusInProgress
			}
			return nil
		}
	}
	return ledger.ErrNotFound
}

// newTestRouter wires the complaint routes behind a middleware that injects
// the given identity, standing in for the JWT auth chain.
func newTestRouter(sl *stubLedger, address string, role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("address", address)
		c.Set("role", role)
		c.Next()
	})

	co := complaints.NewCoordinator(sl, 0)
	group := router.Group("/api/v1/complaints")
	routes.RegisterComplaintRoutes(group, co, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// TestCreateComplaint_Returns201WithQueue files a complaint and expects the
// new id plus the caller's refreshed list.
func TestCreateComplaint_Returns201WithQueue(t *testing.T) {
	sl := &stubLedger{}
	router := newTestRouter(sl, "0xaaa", models.RoleOccupant)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/", models.ComplaintCreate{
		Text: "No water supply", Category: "Water", BlockName: "A", FloorNo: 2, RoomNo: "201",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["id"])
	require.Len(t, body["complaints"], 1)
}

// TestCreateComplaint_StaffForbidden keeps filing occupant-only.
func TestCreateComplaint_StaffForbidden(t *testing.T) {
	sl := &stubLedger{}
	router := newTestRouter(sl, "0xbbb", models.RoleLowerAdmin)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/", models.ComplaintCreate{
		Text: "leak", Category: "Water", BlockName: "A",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, sl.records)
}

// TestCreateComplaint_ValidationFailure maps a blank field to 400.
func TestCreateComplaint_ValidationFailure(t *testing.T) {
	sl := &stubLedger{}
	router := newTestRouter(sl, "0xaaa", models.RoleOccupant)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/", map[string]interface{}{
		"text": "   ", "category": "Water", "block_name": "A",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sl.records)
}

// TestGetQueue_RoleDispatch serves each caller the queue its role entitles
// it to: own complaints, fast lane, or escalation.
func TestGetQueue_RoleDispatch(t *testing.T) {
	now := time.Now().Unix()
	sl := &stubLedger{nextID: 2, records: []models.Complaint{
		{ID: 1, Submitter: "0xaaa", Text: "leak", Category: "Water", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusPending},
		{ID: 2, Submitter: "0xzzz", Text: "old broken door", Category: "Carpentry", BlockName: "B",
			Timestamp: now - 400000, Status: models.StatusPending},
	}}

	cases := []struct {
		role    models.UserRole
		address string
		wantID  float64
	}{
		{models.RoleOccupant, "0xAAA", 1}, // case-insensitive submitter match
		{models.RoleLowerAdmin, "0xbbb", 1},
		{models.RoleHigherAdmin, "0xccc", 2},
	}
	for _, tc := range cases {
		router := newTestRouter(sl, tc.address, tc.role)
		rec := doJSON(t, router, http.MethodGet, "/api/v1/complaints/queue", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		queue := body["complaints"].([]interface{})
		require.Len(t, queue, 1, "role %s", tc.role)
		entry := queue[0].(map[string]interface{})
		assert.Equal(t, tc.wantID, entry["id"], "role %s", tc.role)
	}
}

// TestGetQueue_SearchAndSort passes the query controls through to the
// coordinator.
func TestGetQueue_SearchAndSort(t *testing.T) {
	now := time.Now().Unix()
	sl := &stubLedger{nextID: 3, records: []models.Complaint{
		{ID: 1, Submitter: "0xaaa", Text: "Water leaking", Category: "Plumbing", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusPending},
		{ID: 2, Submitter: "0xaaa", Text: "Broken fan", Category: "Electrical", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusPending},
		{ID: 3, Submitter: "0xaaa", Text: "water pressure low", Category: "Plumbing", BlockName: "B",
			Timestamp: now - 100, Status: models.StatusPending},
	}}
	router := newTestRouter(sl, "0xaaa", models.RoleOccupant)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/complaints/queue?search=water&sort_field=id&sort_order=desc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	queue := body["complaints"].([]interface{})
	require.Len(t, queue, 2)
	assert.Equal(t, float64(3), queue[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(1), queue[1].(map[string]interface{})["id"])
}

// TestApplyTransition_ErrorTaxonomy checks each rejection maps to its HTTP
// status.
func TestApplyTransition_ErrorTaxonomy(t *testing.T) {
	now := time.Now().Unix()
	makeLedger := func() *stubLedger {
		return &stubLedger{nextID: 1, records: []models.Complaint{
			{ID: 1, Submitter: "0xaaa", Text: "leak", Category: "Water", BlockName: "A",
				Timestamp: now - 100, Status: models.StatusPending},
		}}
	}

	// Occupant attempting any transition conflicts with the lifecycle policy
	router := newTestRouter(makeLedger(), "0xaaa", models.RoleOccupant)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/transition",
		models.TransitionRequest{TargetStatus: models.StatusInProgress})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown complaint
	router = newTestRouter(makeLedger(), "0xbbb", models.RoleLowerAdmin)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/complaints/99/transition",
		models.TransitionRequest{TargetStatus: models.StatusInProgress})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Ledger outage
	sl := makeLedger()
	sl.down = true
	router = newTestRouter(sl, "0xbbb", models.RoleLowerAdmin)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/transition",
		models.TransitionRequest{TargetStatus: models.StatusInProgress})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Non-numeric id
	router = newTestRouter(makeLedger(), "0xbbb", models.RoleLowerAdmin)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/complaints/abc/transition",
		models.TransitionRequest{TargetStatus: models.StatusInProgress})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestApplyTransition_Success walks a complaint to completion.
func TestApplyTransition_Success(t *testing.T) {
	now := time.Now().Unix()
	sl := &stubLedger{nextID: 1, records: []models.Complaint{
		{ID: 1, Submitter: "0xaaa", Text: "leak", Category: "Water", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusPending},
	}}
	router := newTestRouter(sl, "0xbbb", models.RoleLowerAdmin)

	for _, target := range []models.ComplaintStatus{models.StatusInProgress, models.StatusCompleted} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/transition",
			models.TransitionRequest{TargetStatus: target})
		require.Equal(t, http.StatusOK, rec.Code, "target %s", target.Label())
	}
	assert.Equal(t, models.StatusCompleted, sl.records[0].Status)
}

// TestApplyReview_FullCycle completes a complaint, rejects it in review and
// expects it reopened with the feedback recorded.
func TestApplyReview_FullCycle(t *testing.T) {
	now := time.Now().Unix()
	sl := &stubLedger{nextID: 1, records: []models.Complaint{
		{ID: 1, Submitter: "0xaaa", Text: "leak", Category: "Water", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusCompleted},
	}}
	router := newTestRouter(sl, "0xaaa", models.RoleOccupant)

	// Unsatisfied without feedback
	rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/review",
		models.ReviewRequest{Satisfied: false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unsatisfied with feedback reopens
	rec = doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/review",
		models.ReviewRequest{Satisfied: false, Feedback: "leak came back"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusInProgress, sl.records[0].Status)
	assert.Equal(t, []string{"leak came back"}, sl.records[0].Feedbacks)

	// A second review on the reopened complaint is forbidden
	rec = doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/review",
		models.ReviewRequest{Satisfied: true})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestApplyReview_ClosedWithHistory maps the double-review on a completed
// complaint to 409.
func TestApplyReview_ClosedWithHistory(t *testing.T) {
	now := time.Now().Unix()
	sl := &stubLedger{nextID: 1, records: []models.Complaint{
		{ID: 1, Submitter: "0xaaa", Text: "leak", Category: "Water", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusCompleted, Feedbacks: []string{"still broken"}},
	}}
	router := newTestRouter(sl, "0xaaa", models.RoleOccupant)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/complaints/1/review",
		models.ReviewRequest{Satisfied: true})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// TestApplyReview_WrongRequester maps another occupant's review to 403.
func TestApplyReview_WrongRequester(t *testing.T) {
	now := time.Now().Unix()
	sl := &stubLedger{nextID: 1, records: []models.Complaint{
		{ID: 1, Submitter: "0xaaa", Text: "leak", Category: "Water", BlockName: "A",
			Timestamp: now - 100, Status: models.StatusCompleted},
	}}
	router := newTestRouter(sl, "0x999", models.RoleOccupant)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/complaints/%d/review", 1),
		models.ReviewRequest{Satisfied: true})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
