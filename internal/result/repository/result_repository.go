package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"meetup-backend/internal/result/domain"
)

// ResultRepository defines the interface for result data access
type ResultRepository interface {
	Save(result *domain.Result) error
	FindByReservation(reservationID string) ([]*domain.Result, error)
	FindByReservationAndUser(reservationID, userID string) (*domain.Result, error)
}

type gormResultRepository struct {
	db *gorm.DB
}

// NewGormResultRepository creates a new GORM-based ResultRepository
func NewGormResultRepository(db *gorm.DB) ResultRepository {
	return &gormResultRepository{db: db}
}

// Save inserts the result, or updates outcome/comment when the participant
// reports twice (atomic upsert on the reservation+user pair)
func (r *gormResultRepository) Save(result *domain.Result) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	result.CreatedAt = time.Now()

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reservation_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"outcome", "comment"}),
	}).Create(result).Error
}

func (r *gormResultRepository) FindByReservation(reservationID string) ([]*domain.Result, error) {
	var results []*domain.Result
	err := r.db.Where("reservation_id = ?", reservationID).
		Order("created_at ASC").Find(&results).Error
	return results, err
}

func (r *gormResultRepository) FindByReservationAndUser(reservationID, userID string) (*domain.Result, error) {
	var result domain.Result
	err := r.db.Where("reservation_id = ? AND user_id = ?", reservationID, userID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
