package participation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yururi-apps/schedule-coordination-backend/internal/invitation"
	"github.com/yururi-apps/schedule-coordination-backend/middleware"
)

type Handler struct{ service *Service }

func NewHandler(s *Service) *Handler { return &Handler{s} }

// resolveAccess evaluates the gate for one request: authenticated session
// first, invitation token from the query string second.
func resolveAccess(c *gin.Context, eventID string) (invitation.Access, *string) {
	var viewer *invitation.Viewer
	var userID *string

	if user := middleware.CurrentUser(c); user != nil {
		viewer = &invitation.Viewer{ID: user.ID, Email: user.Email}
		userID = &user.ID
	}

	claim := invitation.Verify(c.Query("token"))
	return invitation.ResolveAccess(viewer, claim, eventID), userID
}

// SubmitResponses handles POST /events/:id/responses
func (h *Handler) SubmitResponses(c *gin.Context) {
	eventID := c.Param("id")

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, userID := resolveAccess(c, eventID)
	ip := middleware.GetIPFromContext(c)

	summary, err := h.service.Submit(c.Request.Context(), eventID, access, userID, req, ip)
	if err != nil {
		switch {
		case errors.Is(err, invitation.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, invitation.ErrEmailMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnknownVenue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save responses"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Responses saved",
		"summary": summary,
	})
}

// VoteVenue handles POST /events/:id/venue-vote
func (h *Handler) VoteVenue(c *gin.Context) {
	eventID := c.Param("id")

	var req VenueVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, userID := resolveAccess(c, eventID)
	ip := middleware.GetIPFromContext(c)

	if err := h.service.VoteVenue(c.Request.Context(), eventID, access, userID, req, ip); err != nil {
		switch {
		case errors.Is(err, invitation.ErrAccessDenied), errors.Is(err, invitation.ErrEmailMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnknownVenue), errors.Is(err, ErrNotInvited):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save venue vote"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venue vote saved"})
}
