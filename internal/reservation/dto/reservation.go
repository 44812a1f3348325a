package dto

// CreateReservationRequest represents the request body for creating a reservation
type CreateReservationRequest struct {
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	Capacity            int    `json:"capacity"`
	ReservationDatetime string `json:"reservation_datetime" binding:"required"` // RFC3339
}

// UpdateReservationRequest represents the request body for updating a reservation
type UpdateReservationRequest struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	Capacity            *int   `json:"capacity"`
	ReservationDatetime string `json:"reservation_datetime"` // RFC3339
}
