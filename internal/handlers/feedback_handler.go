package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fillratedash/internal/models"
	"fillratedash/internal/services"
)

type FeedbackHandler struct {
	Service *services.FeedbackService
}

func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Service: service}
}

func (h *FeedbackHandler) GetReasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reasons": h.Service.Reasons()})
}

// @Summary      Attach a reason code to an under-filled order
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Param        request  body      models.SubmitFeedbackRequest  true  "Feedback"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /api/submit-feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Record ID and reason are required"})
		return
	}

	_, err := h.Service.Submit(req.RecordID, req.Reason, req.Comments, userEmail(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Record ID and reason are required"})
		case errors.Is(err, services.ErrUnknownReason):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reason selected"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback submitted successfully"})
}

func (h *FeedbackHandler) History(c *gin.Context) {
	recordID, err := strconv.ParseInt(c.Param("record_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record id"})
		return
	}

	history, err := h.Service.History(recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback_history": history})
}
