package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetup-backend/internal/result/domain"
	"meetup-backend/internal/result/usecase"
)

// ResultHandler handles result-reporting HTTP requests
type ResultHandler struct {
	resultUsecase usecase.ResultUsecase
}

// NewResultHandler creates a new ResultHandler
func NewResultHandler(resultUsecase usecase.ResultUsecase) *ResultHandler {
	return &ResultHandler{
		resultUsecase: resultUsecase,
	}
}

// SubmitResultRequest represents the request body for reporting an outcome
type SubmitResultRequest struct {
	Outcome string `json:"outcome" binding:"required"`
	Comment string `json:"comment"`
}

// Submit records the authenticated participant's outcome for a reservation
// POST /api/reservations/:id/results
func (h *ResultHandler) Submit(c *gin.Context) {
	userID := c.GetString("userID")

	var req SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.resultUsecase.Submit(c.Param("id"), userID, domain.Outcome(req.Outcome), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrTooEarly), errors.Is(err, usecase.ErrInvalidOutcome):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List returns all results reported for a reservation
// GET /api/reservations/:id/results
func (h *ResultHandler) List(c *gin.Context) {
	results, err := h.resultUsecase.ListByReservation(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
