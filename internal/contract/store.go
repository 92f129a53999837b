package contract

import (
	"context"
	"errors"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

type Store interface {
	Create(ctx context.Context, sc *models.ServiceContract) error
	List(ctx context.Context, consumerID uint) ([]models.ServiceContract, error)
	FindAsset(ctx context.Context, id uint) (*models.Asset, error)

	// ActiveEndDates returns end dates of the consumer's ACTIVE contracts.
	ActiveEndDates(ctx context.Context, consumerID uint) ([]time.Time, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, sc *models.ServiceContract) error {
	return s.db.WithContext(ctx).Create(sc).Error
}

func (s *gormStore) List(ctx context.Context, consumerID uint) ([]models.ServiceContract, error) {
	var scs []models.ServiceContract
	q := s.db.WithContext(ctx).Preload("Asset").Order("end_date ASC")
	if consumerID != 0 {
		q = q.Where("consumer_id = ?", consumerID)
	}
	if err := q.Find(&scs).Error; err != nil {
		return nil, err
	}
	return scs, nil
}

func (s *gormStore) FindAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("asset %d", id)
		}
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) ActiveEndDates(ctx context.Context, consumerID uint) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.WithContext(ctx).
		Model(&models.ServiceContract{}).
		Where("consumer_id = ? AND status = ?", consumerID, models.ContractActive).
		Pluck("end_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}
