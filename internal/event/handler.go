package event

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yururi-apps/schedule-coordination-backend/internal/invitation"
	"github.com/yururi-apps/schedule-coordination-backend/middleware"
)

type Handler struct{ service *Service }

func NewHandler(s *Service) *Handler { return &Handler{s} }

// ===========================
// Create
// ===========================

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	ip := middleware.GetIPFromContext(c)

	event, err := h.service.CreateEvent(c.Request.Context(), userID, &req, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created",
		"data":    event,
	})
}

// ===========================
// Detail (session or invitation token)
// ===========================

func (h *Handler) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	var viewer *invitation.Viewer
	var viewerID *string
	if user := middleware.CurrentUser(c); user != nil {
		viewer = &invitation.Viewer{ID: user.ID, Email: user.Email}
		viewerID = &user.ID
	}

	claim := invitation.Verify(c.Query("token"))
	access := invitation.ResolveAccess(viewer, claim, eventID)
	ip := middleware.GetIPFromContext(c)

	detail, err := h.service.GetEventDetail(c.Request.Context(), eventID, access, viewerID, ip)
	if err != nil {
		switch {
		case errors.Is(err, invitation.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// ===========================
// List (own events)
// ===========================

func (h *Handler) ListEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	events, err := h.service.ListEvents(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ===========================
// Update
// ===========================

func (h *Handler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	ip := middleware.GetIPFromContext(c)

	event, err := h.service.UpdateEvent(c.Request.Context(), c.Param("id"), userID, &req, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotCreator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated",
		"data":    event,
	})
}

// ===========================
// Delete
// ===========================

func (h *Handler) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	ip := middleware.GetIPFromContext(c)

	if err := h.service.DeleteEvent(c.Request.Context(), c.Param("id"), userID, ip); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotCreator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
