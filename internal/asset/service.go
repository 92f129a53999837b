package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/entityid"
	"assettrack-backend/internal/models"

	"go.uber.org/zap"
)

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

type OnboardInput struct {
	Name         string
	SerialNo     string
	ConsumerID   uint
	SupplierID   *uint
	DepartmentID *uint

	WarrantyNotApplicable bool
	AmcCmcNotApplicable   bool

	Building string
	Floor    string
	Room     string

	InstalledAt time.Time
	InstalledBy string
	Notes       string

	// Initial coverage; ignored when WarrantyNotApplicable is set.
	WarrantyType    models.WarrantyType
	WarrantyMonths  int
}

// Onboard creates the asset together with its location, installation record
// and initial warranty in one transaction. Either the whole chain lands or
// none of it does.
func (s *Service) Onboard(ctx context.Context, in OnboardInput) (*models.Asset, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if in.ConsumerID == 0 {
		return nil, apperr.Validationf("consumer_id is required")
	}
	if in.InstalledAt.IsZero() {
		return nil, apperr.Validationf("installed_at is required")
	}
	if !in.WarrantyNotApplicable {
		if !in.WarrantyType.Valid() {
			return nil, apperr.Validationf("unknown warranty type %q", in.WarrantyType)
		}
		if in.WarrantyMonths <= 0 {
			return nil, apperr.Validationf("warranty_months must be positive, got %d", in.WarrantyMonths)
		}
	}

	var assetID uint
	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.FindConsumer(ctx, in.ConsumerID); err != nil {
			return err
		}

		a := &models.Asset{
			AssetNo:               entityid.New(entityid.PrefixAsset),
			Name:                  in.Name,
			SerialNo:              in.SerialNo,
			Status:                models.AssetInService,
			ConsumerID:            in.ConsumerID,
			SupplierID:            in.SupplierID,
			DepartmentID:          in.DepartmentID,
			WarrantyNotApplicable: in.WarrantyNotApplicable,
			AmcCmcNotApplicable:   in.AmcCmcNotApplicable,
		}
		if err := tx.CreateAsset(ctx, a); err != nil {
			return err
		}
		assetID = a.ID

		if err := tx.CreateLocation(ctx, &models.AssetLocation{
			AssetID:  a.ID,
			Building: in.Building,
			Floor:    in.Floor,
			Room:     in.Room,
		}); err != nil {
			return err
		}

		if err := tx.CreateInstallation(ctx, &models.AssetInstallation{
			AssetID:     a.ID,
			InstalledAt: in.InstalledAt,
			InstalledBy: in.InstalledBy,
			Notes:       in.Notes,
		}); err != nil {
			return err
		}

		if !in.WarrantyNotApplicable {
			if err := tx.CreateWarranty(ctx, &models.Warranty{
				AssetID:    a.ID,
				ConsumerID: in.ConsumerID,
				SupplierID: in.SupplierID,
				Type:       in.WarrantyType,
				StartDate:  in.InstalledAt,
				EndDate:    in.InstalledAt.AddDate(0, in.WarrantyMonths, 0),
				IsActive:   true,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("onboard asset: %w: %v", apperr.ErrTransactionAborted, err)
		}
	}

	s.logger.Info("asset onboarded",
		zap.Uint("asset_id", assetID),
		zap.String("name", in.Name))

	return s.store.FindAssetWithRelations(ctx, assetID)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Asset, error) {
	return s.store.FindAssetWithRelations(ctx, id)
}

func (s *Service) List(ctx context.Context, consumerID uint) ([]models.Asset, error) {
	return s.store.ListAssets(ctx, consumerID)
}
