package warranty

import (
	"context"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/expiry"
	"assettrack-backend/internal/models"

	"go.uber.org/zap"
)

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

type CreateInput struct {
	AssetID    uint
	ConsumerID uint
	SupplierID *uint
	Type       models.WarrantyType
	StartDate  time.Time
	EndDate    time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Warranty, error) {
	if in.AssetID == 0 {
		return nil, apperr.Validationf("asset_id is required")
	}
	if in.ConsumerID == 0 {
		return nil, apperr.Validationf("consumer_id is required")
	}
	if !in.Type.Valid() {
		return nil, apperr.Validationf("unknown warranty type %q", in.Type)
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, apperr.Validationf("end_date must be after start_date")
	}
	if _, err := s.store.FindAsset(ctx, in.AssetID); err != nil {
		return nil, err
	}

	w := &models.Warranty{
		AssetID:    in.AssetID,
		ConsumerID: in.ConsumerID,
		SupplierID: in.SupplierID,
		Type:       in.Type,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		IsActive:   true,
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info("warranty created",
		zap.Uint("warranty_id", w.ID),
		zap.Uint("asset_id", w.AssetID))
	return w, nil
}

func (s *Service) List(ctx context.Context, consumerID uint) ([]models.Warranty, error) {
	return s.store.List(ctx, consumerID)
}

// ExpiryStats buckets the consumer's active warranties into the six
// day-window buckets. No matching rows is not an error; all counts are zero.
func (s *Service) ExpiryStats(ctx context.Context, consumerID uint) ([]expiry.Bucket, error) {
	if consumerID == 0 {
		return nil, apperr.Validationf("consumer_id is required")
	}
	dates, err := s.store.ActiveEndDates(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	return buckets(expiry.Bucketize(s.now(), dates)), nil
}

// ExpiryStatsWithoutContract is the "without AMC/CMC" variant: only
// warranties whose asset carries no service contract and is not flagged
// exempt take part.
func (s *Service) ExpiryStatsWithoutContract(ctx context.Context, consumerID uint) ([]expiry.Bucket, error) {
	if consumerID == 0 {
		return nil, apperr.Validationf("consumer_id is required")
	}
	dates, err := s.store.ActiveEndDatesWithoutContract(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	return buckets(expiry.Bucketize(s.now(), dates)), nil
}

func buckets(c expiry.Counts) []expiry.Bucket {
	return []expiry.Bucket{
		{Count: c.In5, Title: "Expiring in 5 days", Text: "Warranties expiring within the next 5 days"},
		{Count: c.In10, Title: "Expiring in 10 days", Text: "Warranties expiring 6 to 10 days from now"},
		{Count: c.In30, Title: "Expiring in 30 days", Text: "Warranties expiring 11 to 30 days from now"},
		{Count: c.Last5, Title: "Expired in last 5 days", Text: "Warranties expired within the last 5 days"},
		{Count: c.Last10, Title: "Expired in last 10 days", Text: "Warranties expired 6 to 10 days ago"},
		{Count: c.Last30, Title: "Expired in last 30 days", Text: "Warranties expired 11 to 30 days ago"},
	}
}
