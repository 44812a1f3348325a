package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meetup-backend/internal/reservation/dto"
	"meetup-backend/internal/reservation/usecase"
)

// ReservationHandler handles reservation-related HTTP requests
type ReservationHandler struct {
	reservationUsecase usecase.ReservationUsecase
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationUsecase usecase.ReservationUsecase) *ReservationHandler {
	return &ReservationHandler{
		reservationUsecase: reservationUsecase,
	}
}

// Create creates a new reservation; the creator becomes host and participant
// POST /api/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationUsecase.Create(userID, &req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// List returns upcoming open reservations
// GET /api/reservations?limit=50&offset=0
func (h *ReservationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reservations, total, err := h.reservationUsecase.ListUpcoming(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"total":        total,
	})
}

// ListJoined returns reservations the authenticated user participates in
// GET /api/reservations/joined
func (h *ReservationHandler) ListJoined(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	reservations, total, err := h.reservationUsecase.ListJoined(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"total":        total,
	})
}

// GetByID returns a specific reservation
// GET /api/reservations/:id
func (h *ReservationHandler) GetByID(c *gin.Context) {
	reservation, err := h.reservationUsecase.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// Update updates a reservation (host only)
// PUT /api/reservations/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationUsecase.Update(c.Param("id"), userID, &req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// Cancel cancels a reservation (host only)
// DELETE /api/reservations/:id
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.reservationUsecase.Cancel(c.Param("id"), userID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled"})
}

// Join joins the authenticated user to a reservation
// POST /api/reservations/:id/join
func (h *ReservationHandler) Join(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.reservationUsecase.Join(c.Param("id"), userID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined"})
}

// Leave removes the authenticated user from a reservation
// POST /api/reservations/:id/leave
func (h *ReservationHandler) Leave(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.reservationUsecase.Leave(c.Param("id"), userID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left"})
}

// Participants lists a reservation's participants
// GET /api/reservations/:id/participants
func (h *ReservationHandler) Participants(c *gin.Context) {
	infos, err := h.reservationUsecase.Participants(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	// Collapse token rows to one entry per user for the API surface
	seen := make(map[string]bool)
	participants := make([]gin.H, 0, len(infos))
	for _, info := range infos {
		if seen[info.UserID] {
			continue
		}
		seen[info.UserID] = true
		participants = append(participants, gin.H{
			"user_id":  info.UserID,
			"nickname": info.Nickname,
		})
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrAlreadyJoined),
		errors.Is(err, usecase.ErrFull),
		errors.Is(err, usecase.ErrNotOpen),
		errors.Is(err, usecase.ErrNotParticipant),
		errors.Is(err, usecase.ErrHostCannotLeave),
		errors.Is(err, usecase.ErrPastDatetime):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
