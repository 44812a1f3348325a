package usecase

import (
	"errors"
	"time"

	resdomain "meetup-backend/internal/reservation/domain"
	resrepo "meetup-backend/internal/reservation/repository"
	"meetup-backend/internal/result/domain"
	"meetup-backend/internal/result/repository"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotParticipant      = errors.New("only participants can report a result")
	ErrTooEarly            = errors.New("reservation has not happened yet")
	ErrInvalidOutcome      = errors.New("invalid outcome")
)

// ResultUsecase defines the interface for result reporting business logic
type ResultUsecase interface {
	Submit(reservationID, userID string, outcome domain.Outcome, comment string) (*domain.Result, error)
	ListByReservation(reservationID string) ([]*domain.Result, error)
}

type resultUsecase struct {
	resultRepo      repository.ResultRepository
	reservationRepo resrepo.ReservationRepository
	nowFunc         func() time.Time
}

// NewResultUsecase creates a new instance of resultUsecase
func NewResultUsecase(resultRepo repository.ResultRepository, reservationRepo resrepo.ReservationRepository) ResultUsecase {
	return &resultUsecase{
		resultRepo:      resultRepo,
		reservationRepo: reservationRepo,
		nowFunc:         time.Now,
	}
}

// Submit records a participant's outcome report. Reports are only accepted
// from participants and only once the reservation time has passed.
func (u *resultUsecase) Submit(reservationID, userID string, outcome domain.Outcome, comment string) (*domain.Result, error) {
	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}

	reservation, err := u.reservationRepo.FindByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil || reservation.Status == resdomain.StatusCancelled {
		return nil, ErrReservationNotFound
	}
	if u.nowFunc().Before(reservation.ReservationDatetime) {
		return nil, ErrTooEarly
	}

	joined, err := u.reservationRepo.IsParticipant(reservationID, userID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, ErrNotParticipant
	}

	result := &domain.Result{
		ReservationID: reservationID,
		UserID:        userID,
		Outcome:       outcome,
		Comment:       comment,
	}
	if err := u.resultRepo.Save(result); err != nil {
		return nil, err
	}

	// First report after the event flips the reservation to finished
	if reservation.Status == resdomain.StatusOpen {
		if err := u.reservationRepo.UpdateStatus(reservationID, resdomain.StatusFinished); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (u *resultUsecase) ListByReservation(reservationID string) ([]*domain.Result, error) {
	reservation, err := u.reservationRepo.FindByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return u.resultRepo.FindByReservation(reservationID)
}
