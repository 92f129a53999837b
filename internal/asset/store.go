package asset

import (
	"context"
	"errors"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
)

type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CreateAsset(ctx context.Context, a *models.Asset) error
	CreateLocation(ctx context.Context, loc *models.AssetLocation) error
	CreateInstallation(ctx context.Context, inst *models.AssetInstallation) error
	CreateWarranty(ctx context.Context, w *models.Warranty) error

	FindConsumer(ctx context.Context, id uint) (*models.Consumer, error)
	FindAssetWithRelations(ctx context.Context, id uint) (*models.Asset, error)
	ListAssets(ctx context.Context, consumerID uint) ([]models.Asset, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) CreateAsset(ctx context.Context, a *models.Asset) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *gormStore) CreateLocation(ctx context.Context, loc *models.AssetLocation) error {
	return s.db.WithContext(ctx).Create(loc).Error
}

func (s *gormStore) CreateInstallation(ctx context.Context, inst *models.AssetInstallation) error {
	return s.db.WithContext(ctx).Create(inst).Error
}

func (s *gormStore) CreateWarranty(ctx context.Context, w *models.Warranty) error {
	return s.db.WithContext(ctx).Create(w).Error
}

func (s *gormStore) FindConsumer(ctx context.Context, id uint) (*models.Consumer, error) {
	var con models.Consumer
	if err := s.db.WithContext(ctx).First(&con, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("consumer %d", id)
		}
		return nil, err
	}
	return &con, nil
}

func (s *gormStore) FindAssetWithRelations(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	err := s.db.WithContext(ctx).
		Preload("Consumer").
		Preload("Location").
		Preload("Installation").
		Preload("Warranties").
		Preload("ServiceContracts").
		First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("asset %d", id)
		}
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) ListAssets(ctx context.Context, consumerID uint) ([]models.Asset, error) {
	var assets []models.Asset
	q := s.db.WithContext(ctx).Preload("Location").Order("name ASC")
	if consumerID != 0 {
		q = q.Where("consumer_id = ?", consumerID)
	}
	if err := q.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
