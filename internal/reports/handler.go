package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct{ service *Service }

func NewHandler(s *Service) *Handler { return &Handler{s} }

// ExportAttendance handles GET /events/:id/export?format=csv|excel|pdf
func (h *Handler) ExportAttendance(c *gin.Context) {
	eventID := c.Param("id")
	userID := c.GetString("user_id")

	format := c.DefaultQuery("format", FormatCSV)

	out, filename, contentType, err := h.service.ExportAttendance(c.Request.Context(), eventID, userID, format)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, ErrNotCreator):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, out)
}
