package domain

import "time"

// ReservationStatus represents the current state of a reservation
type ReservationStatus string

const (
	StatusOpen      ReservationStatus = "open"
	StatusCancelled ReservationStatus = "cancelled"
	StatusFinished  ReservationStatus = "finished"
)

// Reservation represents a time-boxed meetup created by a host
type Reservation struct {
	ID                  string            `json:"id" gorm:"primaryKey"`
	HostID              string            `json:"host_id" gorm:"index;not null"`
	Title               string            `json:"title" gorm:"not null"`
	Description         string            `json:"description,omitempty"`
	Location            string            `json:"location,omitempty"`
	Capacity            int               `json:"capacity" gorm:"default:0"` // 0 = unlimited
	ReservationDatetime time.Time         `json:"reservation_datetime" gorm:"index;not null"`
	Status              ReservationStatus `json:"status" gorm:"default:open;index"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Participant links a user to a reservation. The host is a participant too.
type Participant struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ReservationID string    `json:"reservation_id" gorm:"uniqueIndex:idx_reservation_user;not null"`
	UserID        string    `json:"user_id" gorm:"uniqueIndex:idx_reservation_user;index;not null"`
	JoinedAt      time.Time `json:"joined_at"`
}

// ParticipantInfo is the joined view the notification scheduler consumes:
// one row per (participant, registered push token). Participants without a
// push token appear with an empty PushToken.
type ParticipantInfo struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	PushToken string `json:"push_token"`
}
