package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-complaint-server/complaints"
	"hostel-complaint-server/ledger"
	"hostel-complaint-server/middleware"
	"hostel-complaint-server/models"
	ws "hostel-complaint-server/websocket"
)

var (
	coordinator *complaints.Coordinator
	staffHub    *ws.Hub
)

// RegisterComplaintRoutes registers the complaint lifecycle endpoints.
func RegisterComplaintRoutes(router *gin.RouterGroup, co *complaints.Coordinator, hub *ws.Hub) {
	coordinator = co
	staffHub = hub

	// File a new complaint (occupants only)
	router.POST("/", middleware.RequireRoles(models.RoleOccupant), createComplaint)

	// Role-dispatched queue: occupants see their own complaints, lower
	// admins the fast lane, higher admins the escalation queue
	router.GET("/queue", getQueue)

	// Staff status transition. Role legality is decided by the lifecycle
	// policy so rejections carry the exact policy error.
	router.POST("/:id/transition", applyTransition)

	// Submitter review of a completed complaint
	router.POST("/:id/review", applyReview)
}

// createComplaint files a complaint on the ledger for the caller
func createComplaint(c *gin.Context) {
	address, role := middleware.CurrentActor(c)
	actor := complaints.Actor{Identity: address, Role: role}

	var req models.ComplaintCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, mine, err := coordinator.Submit(c.Request.Context(), actor, req)
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	if staffHub != nil {
		staffHub.Notify(ws.EventComplaintCreated, id, models.StatusPending.Label())
	}
	log.Printf("📝 Complaint %d filed by %s", id, address)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Complaint filed successfully",
		"id":         id,
		"complaints": mine,
	})
}

// getQueue returns the caller's queue with optional search and sort controls
func getQueue(c *gin.Context) {
	address, role := middleware.CurrentActor(c)
	actor := complaints.Actor{Identity: address, Role: role}

	params := complaints.QueryParams{
		Search:    c.Query("search"),
		SortField: c.DefaultQuery("sort_field", complaints.SortByID),
		SortOrder: c.DefaultQuery("sort_order", complaints.OrderAsc),
	}

	queue, err := coordinator.QueueFor(c.Request.Context(), actor, params)
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":       role,
		"complaints": queue,
	})
}

// applyTransition moves a complaint to the requested status
func applyTransition(c *gin.Context) {
	address, role := middleware.CurrentActor(c)
	actor := complaints.Actor{Identity: address, Role: role}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	queue, err := coordinator.ApplyTransition(c.Request.Context(), actor, id, req.TargetStatus)
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	if staffHub != nil {
		staffHub.Notify(ws.EventStatusChanged, id, req.TargetStatus.Label())
	}
	log.Printf("🔄 Complaint %d moved to %s by %s", id, req.TargetStatus.Label(), address)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Status updated successfully",
		"complaints": queue,
	})
}

// applyReview records the submitter's verdict on a completed complaint
func applyReview(c *gin.Context) {
	address, role := middleware.CurrentActor(c)
	actor := complaints.Actor{Identity: address, Role: role}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint id"})
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	queue, err := coordinator.ApplyReview(c.Request.Context(), actor, id, req.Satisfied, req.Feedback)
	if err != nil {
		respondComplaintError(c, err)
		return
	}

	if !req.Satisfied && staffHub != nil {
		staffHub.Notify(ws.EventComplaintReopened, id, models.StatusInProgress.Label())
	}
	log.Printf("📣 Review on complaint %d by %s (satisfied=%v)", id, address, req.Satisfied)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Review submitted successfully",
		"complaints": queue,
	})
}

// respondComplaintError maps the coordinator's error taxonomy onto HTTP
// status codes, 1:1. Ledger unavailability stays distinct so the caller can
// retry explicitly.
func respondComplaintError(c *gin.Context, err error) {
	var vErr *complaints.ValidationError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": vErr.Error()})
	case errors.Is(err, complaints.ErrFeedbackRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback required", "message": err.Error()})
	case errors.Is(err, complaints.ErrNotReviewable):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not reviewable", "message": err.Error()})
	case errors.Is(err, complaints.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Illegal transition", "message": err.Error()})
	case errors.Is(err, complaints.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "Already reviewed", "message": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found", "message": err.Error()})
	case errors.Is(err, ledger.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger unavailable", "message": "The complaint ledger could not be reached. Please retry."})
	default:
		log.Printf("❌ Unexpected complaint error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
