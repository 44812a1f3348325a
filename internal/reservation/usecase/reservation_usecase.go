package usecase

import (
	"errors"
	"time"

	"meetup-backend/internal/reservation/domain"
	"meetup-backend/internal/reservation/dto"
	"meetup-backend/internal/reservation/repository"
)

var (
	ErrNotFound        = errors.New("reservation not found")
	ErrNotOpen         = errors.New("reservation is not open")
	ErrAlreadyJoined   = errors.New("already joined")
	ErrNotParticipant  = errors.New("not a participant")
	ErrFull            = errors.New("reservation is full")
	ErrNotHost         = errors.New("only the host can do this")
	ErrHostCannotLeave = errors.New("host cannot leave their own reservation")
	ErrPastDatetime    = errors.New("reservation datetime must be in the future")
)

// ReservationUsecase defines the interface for reservation business logic
type ReservationUsecase interface {
	Create(hostID string, req *dto.CreateReservationRequest) (*domain.Reservation, error)
	GetByID(id string) (*domain.Reservation, error)
	ListUpcoming(limit, offset int) ([]*domain.Reservation, int64, error)
	ListJoined(userID string, limit, offset int) ([]*domain.Reservation, int64, error)
	Update(id, userID string, req *dto.UpdateReservationRequest) (*domain.Reservation, error)
	Cancel(id, userID string) error
	Join(id, userID string) error
	Leave(id, userID string) error
	Participants(id string) ([]domain.ParticipantInfo, error)
}

type reservationUsecase struct {
	repo    repository.ReservationRepository
	nowFunc func() time.Time
}

// NewReservationUsecase creates a new instance of reservationUsecase
func NewReservationUsecase(repo repository.ReservationRepository) ReservationUsecase {
	return &reservationUsecase{
		repo:    repo,
		nowFunc: time.Now,
	}
}

func (u *reservationUsecase) Create(hostID string, req *dto.CreateReservationRequest) (*domain.Reservation, error) {
	datetime, err := time.Parse(time.RFC3339, req.ReservationDatetime)
	if err != nil {
		return nil, errors.New("invalid reservation_datetime, must be RFC3339")
	}
	if !datetime.After(u.nowFunc()) {
		return nil, ErrPastDatetime
	}
	if req.Capacity < 0 {
		return nil, errors.New("capacity must be >= 0")
	}

	reservation := &domain.Reservation{
		HostID:              hostID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Capacity:            req.Capacity,
		ReservationDatetime: datetime,
		Status:              domain.StatusOpen,
	}

	if err := u.repo.Create(reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (u *reservationUsecase) GetByID(id string) (*domain.Reservation, error) {
	reservation, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrNotFound
	}
	return reservation, nil
}

func (u *reservationUsecase) ListUpcoming(limit, offset int) ([]*domain.Reservation, int64, error) {
	return u.repo.FindUpcoming(u.nowFunc(), limit, offset)
}

func (u *reservationUsecase) ListJoined(userID string, limit, offset int) ([]*domain.Reservation, int64, error) {
	return u.repo.FindJoined(userID, limit, offset)
}

func (u *reservationUsecase) Update(id, userID string, req *dto.UpdateReservationRequest) (*domain.Reservation, error) {
	reservation, err := u.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation.HostID != userID {
		return nil, ErrNotHost
	}
	if reservation.Status != domain.StatusOpen {
		return nil, ErrNotOpen
	}

	if req.Title != "" {
		reservation.Title = req.Title
	}
	if req.Description != "" {
		reservation.Description = req.Description
	}
	if req.Location != "" {
		reservation.Location = req.Location
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, errors.New("capacity must be >= 0")
		}
		reservation.Capacity = *req.Capacity
	}
	if req.ReservationDatetime != "" {
		datetime, err := time.Parse(time.RFC3339, req.ReservationDatetime)
		if err != nil {
			return nil, errors.New("invalid reservation_datetime, must be RFC3339")
		}
		if !datetime.After(u.nowFunc()) {
			return nil, ErrPastDatetime
		}
		reservation.ReservationDatetime = datetime
	}

	if err := u.repo.Update(reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (u *reservationUsecase) Cancel(id, userID string) error {
	reservation, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if reservation.HostID != userID {
		return ErrNotHost
	}
	if reservation.Status != domain.StatusOpen {
		return ErrNotOpen
	}
	return u.repo.UpdateStatus(id, domain.StatusCancelled)
}

func (u *reservationUsecase) Join(id, userID string) error {
	reservation, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if reservation.Status != domain.StatusOpen {
		return ErrNotOpen
	}

	joined, err := u.repo.IsParticipant(id, userID)
	if err != nil {
		return err
	}
	if joined {
		return ErrAlreadyJoined
	}

	if reservation.Capacity > 0 {
		count, err := u.repo.CountParticipants(id)
		if err != nil {
			return err
		}
		if count >= int64(reservation.Capacity) {
			return ErrFull
		}
	}

	return u.repo.AddParticipant(id, userID)
}

func (u *reservationUsecase) Leave(id, userID string) error {
	reservation, err := u.GetByID(id)
	if err != nil {
		return err
	}
	if reservation.HostID == userID {
		return ErrHostCannotLeave
	}

	joined, err := u.repo.IsParticipant(id, userID)
	if err != nil {
		return err
	}
	if !joined {
		return ErrNotParticipant
	}

	return u.repo.RemoveParticipant(id, userID)
}

func (u *reservationUsecase) Participants(id string) ([]domain.ParticipantInfo, error) {
	if _, err := u.GetByID(id); err != nil {
		return nil, err
	}
	return u.repo.FindParticipants(id)
}
