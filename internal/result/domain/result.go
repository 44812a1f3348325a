package domain

import "time"

// Outcome represents how a meetup went for one participant
type Outcome string

const (
	OutcomeAttended  Outcome = "attended"
	OutcomeNoShow    Outcome = "no_show"
	OutcomeCancelled Outcome = "cancelled"
)

// Valid reports whether the outcome is one of the known values
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeAttended, OutcomeNoShow, OutcomeCancelled:
		return true
	}
	return false
}

// Result is a participant's report on a finished reservation.
// One result per (reservation, user).
type Result struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ReservationID string    `json:"reservation_id" gorm:"uniqueIndex:idx_result_reservation_user;not null"`
	UserID        string    `json:"user_id" gorm:"uniqueIndex:idx_result_reservation_user;not null"`
	Outcome       Outcome   `json:"outcome" gorm:"not null"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
