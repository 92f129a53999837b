package warranty

import (
	"context"
	"errors"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

type Store interface {
	Create(ctx context.Context, w *models.Warranty) error
	List(ctx context.Context, consumerID uint) ([]models.Warranty, error)
	FindAsset(ctx context.Context, id uint) (*models.Asset, error)

	// ActiveEndDates returns end dates of the consumer's active warranties.
	ActiveEndDates(ctx context.Context, consumerID uint) ([]time.Time, error)
	// ActiveEndDatesWithoutContract restricts the set to warranties whose
	// asset has no service contract at all and is not flagged as exempt
	// from warranty or AMC/CMC coverage.
	ActiveEndDatesWithoutContract(ctx context.Context, consumerID uint) ([]time.Time, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, w *models.Warranty) error {
	return s.db.WithContext(ctx).Create(w).Error
}

func (s *gormStore) List(ctx context.Context, consumerID uint) ([]models.Warranty, error) {
	var ws []models.Warranty
	q := s.db.WithContext(ctx).Preload("Asset").Order("end_date ASC")
	if consumerID != 0 {
		q = q.Where("consumer_id = ?", consumerID)
	}
	if err := q.Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
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
		Model(&models.Warranty{}).
		Where("consumer_id = ? AND is_active = ?", consumerID, true).
		Pluck("end_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (s *gormStore) ActiveEndDatesWithoutContract(ctx context.Context, consumerID uint) ([]time.Time, error) {
	var dates []time.Time
	err := s.db.WithContext(ctx).
		Model(&models.Warranty{}).
		Joins("JOIN assets ON assets.id = warranties.asset_id").
		Joins("LEFT JOIN service_contracts ON service_contracts.asset_id = assets.id").
		Where("warranties.consumer_id = ? AND warranties.is_active = ?", consumerID, true).
		Where("service_contracts.id IS NULL").
		Where("assets.warranty_not_applicable = ? AND assets.amc_cmc_not_applicable = ?", false, false).
		Pluck("warranties.end_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}
