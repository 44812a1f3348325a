package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetup-backend/internal/reservation/domain"
)

// gormReservationRepository implements ReservationRepository using GORM
type gormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GORM-based ReservationRepository
func NewGormReservationRepository(db *gorm.DB) ReservationRepository {
	return &gormReservationRepository{db: db}
}

func (r *gormReservationRepository) Create(reservation *domain.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = time.Now()
	if reservation.Status == "" {
		reservation.Status = domain.StatusOpen
	}

	// The host joins their own reservation in the same transaction
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reservation).Error; err != nil {
			return err
		}
		host := &domain.Participant{
			ID:            uuid.New().String(),
			ReservationID: reservation.ID,
			UserID:        reservation.HostID,
			JoinedAt:      time.Now(),
		}
		return tx.Create(host).Error
	})
}

func (r *gormReservationRepository) FindByID(id string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *gormReservationRepository) FindUpcoming(after time.Time, limit, offset int) ([]*domain.Reservation, int64, error) {
	var reservations []*domain.Reservation
	var total int64

	query := r.db.Model(&domain.Reservation{}).
		Where("status = ? AND reservation_datetime >= ?", domain.StatusOpen, after)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("reservation_datetime ASC").
		Limit(limit).Offset(offset).Find(&reservations).Error

	return reservations, total, err
}

func (r *gormReservationRepository) FindJoined(userID string, limit, offset int) ([]*domain.Reservation, int64, error) {
	var reservations []*domain.Reservation
	var total int64

	query := r.db.Model(&domain.Reservation{}).
		Joins("JOIN participants ON participants.reservation_id = reservations.id").
		Where("participants.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("reservation_datetime DESC").
		Limit(limit).Offset(offset).Find(&reservations).Error

	return reservations, total, err
}

func (r *gormReservationRepository) Update(reservation *domain.Reservation) error {
	reservation.UpdatedAt = time.Now()
	return r.db.Save(reservation).Error
}

func (r *gormReservationRepository) UpdateStatus(id string, status domain.ReservationStatus) error {
	return r.db.Model(&domain.Reservation{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormReservationRepository) AddParticipant(reservationID, userID string) error {
	participant := &domain.Participant{
		ID:            uuid.New().String(),
		ReservationID: reservationID,
		UserID:        userID,
		JoinedAt:      time.Now(),
	}
	return r.db.Create(participant).Error
}

func (r *gormReservationRepository) RemoveParticipant(reservationID, userID string) error {
	return r.db.Where("reservation_id = ? AND user_id = ?", reservationID, userID).
		Delete(&domain.Participant{}).Error
}

func (r *gormReservationRepository) IsParticipant(reservationID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Participant{}).
		Where("reservation_id = ? AND user_id = ?", reservationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormReservationRepository) CountParticipants(reservationID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Participant{}).
		Where("reservation_id = ?", reservationID).
		Count(&count).Error
	return count, err
}

func (r *gormReservationRepository) FindInWindow(start, end time.Time) ([]*domain.Reservation, error) {
	var reservations []*domain.Reservation
	err := r.db.Where("status = ? AND reservation_datetime BETWEEN ? AND ?",
		domain.StatusOpen, start, end).Find(&reservations).Error
	return reservations, err
}

// FindParticipants joins participants with user nicknames and push tokens.
// A participant with several devices yields one row per token; a participant
// with no token yields a single row with an empty push_token.
func (r *gormReservationRepository) FindParticipants(reservationID string) ([]domain.ParticipantInfo, error) {
	var infos []domain.ParticipantInfo
	err := r.db.Table("participants").
		Select("participants.user_id AS user_id, users.nickname AS nickname, COALESCE(push_tokens.token, '') AS push_token").
		Joins("JOIN users ON users.id = participants.user_id").
		Joins("LEFT JOIN push_tokens ON push_tokens.user_id = participants.user_id").
		Where("participants.reservation_id = ?", reservationID).
		Scan(&infos).Error
	return infos, err
}
