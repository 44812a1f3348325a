package repository

import (
	"time"

	"meetup-backend/internal/reservation/domain"
)

// ReservationRepository defines the interface for reservation data access
type ReservationRepository interface {
	// Create creates a reservation and its host participant row atomically
	Create(reservation *domain.Reservation) error

	// FindByID finds a reservation by its ID
	FindByID(id string) (*domain.Reservation, error)

	// FindUpcoming lists open reservations at or after the given instant
	FindUpcoming(after time.Time, limit, offset int) ([]*domain.Reservation, int64, error)

	// FindJoined lists reservations the user participates in
	FindJoined(userID string, limit, offset int) ([]*domain.Reservation, int64, error)

	// Update updates an existing reservation
	Update(reservation *domain.Reservation) error

	// UpdateStatus changes a reservation's status
	UpdateStatus(id string, status domain.ReservationStatus) error

	// AddParticipant joins a user to a reservation
	AddParticipant(reservationID, userID string) error

	// RemoveParticipant removes a user from a reservation
	RemoveParticipant(reservationID, userID string) error

	// IsParticipant reports whether the user has joined the reservation
	IsParticipant(reservationID, userID string) (bool, error)

	// CountParticipants returns the number of participants of a reservation
	CountParticipants(reservationID string) (int64, error)

	// FindInWindow finds open reservations whose datetime falls within
	// [start, end], inclusive on both ends
	FindInWindow(start, end time.Time) ([]*domain.Reservation, error)

	// FindParticipants returns participant rows joined with nicknames and
	// push tokens, one row per registered token
	FindParticipants(reservationID string) ([]domain.ParticipantInfo, error)
}
