package warranty

import (
	"context"
	"testing"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/expiry"
	"assettrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

// memStore keeps whole entities and applies the cohort filters in Go, so the
// tests exercise the same selection semantics the SQL implements.
type memStore struct {
	warranties []models.Warranty
	assets     map[uint]models.Asset
	contracts  []models.ServiceContract
	nextID     uint
}

func newMemStore() *memStore {
	return &memStore{assets: make(map[uint]models.Asset)}
}

func (m *memStore) seedAsset(a models.Asset) uint {
	a.ID = uint(len(m.assets) + 1)
	m.assets[a.ID] = a
	return a.ID
}

func (m *memStore) Create(ctx context.Context, w *models.Warranty) error {
	m.nextID++
	w.ID = m.nextID
	m.warranties = append(m.warranties, *w)
	return nil
}

func (m *memStore) List(ctx context.Context, consumerID uint) ([]models.Warranty, error) {
	var out []models.Warranty
	for _, w := range m.warranties {
		if consumerID == 0 || w.ConsumerID == consumerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memStore) FindAsset(ctx context.Context, id uint) (*models.Asset, error) {
	a, ok := m.assets[id]
	if !ok {
		return nil, apperr.NotFoundf("asset %d", id)
	}
	return &a, nil
}

func (m *memStore) ActiveEndDates(ctx context.Context, consumerID uint) ([]time.Time, error) {
	var dates []time.Time
	for _, w := range m.warranties {
		if w.ConsumerID == consumerID && w.IsActive {
			dates = append(dates, w.EndDate)
		}
	}
	return dates, nil
}

func (m *memStore) hasContract(assetID uint) bool {
	for _, sc := range m.contracts {
		if sc.AssetID == assetID {
			return true
		}
	}
	return false
}

func (m *memStore) ActiveEndDatesWithoutContract(ctx context.Context, consumerID uint) ([]time.Time, error) {
	var dates []time.Time
	for _, w := range m.warranties {
		if w.ConsumerID != consumerID || !w.IsActive {
			continue
		}
		a := m.assets[w.AssetID]
		if a.WarrantyNotApplicable || a.AmcCmcNotApplicable || m.hasContract(w.AssetID) {
			continue
		}
		dates = append(dates, w.EndDate)
	}
	return dates, nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(store, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func days(n int) time.Time {
	return expiry.Midnight(fixedNow).AddDate(0, 0, n)
}

func seedWarranty(store *memStore, consumerID, assetID uint, end time.Time, active bool) {
	store.nextID++
	store.warranties = append(store.warranties, models.Warranty{
		ID:         store.nextID,
		AssetID:    assetID,
		ConsumerID: consumerID,
		Type:       models.WarrantyStandard,
		StartDate:  end.AddDate(-1, 0, 0),
		EndDate:    end,
		IsActive:   active,
	})
}

func TestExpiryStatsBucketPlacement(t *testing.T) {
	svc, store := newTestService()
	assetID := store.seedAsset(models.Asset{Name: "MRI", ConsumerID: 1})

	seedWarranty(store, 1, assetID, days(5), true)  // In5: boundary inclusive
	seedWarranty(store, 1, assetID, days(7), true)  // In10, not In5
	seedWarranty(store, 1, assetID, days(25), true) // In30
	seedWarranty(store, 1, assetID, days(-2), true) // Last5

	stats, err := svc.ExpiryStats(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stats, 6)

	assert.Equal(t, int64(1), stats[0].Count, "expiring in 5")
	assert.Equal(t, int64(1), stats[1].Count, "expiring in 10")
	assert.Equal(t, int64(1), stats[2].Count, "expiring in 30")
	assert.Equal(t, int64(1), stats[3].Count, "expired in last 5")
	assert.Equal(t, int64(0), stats[4].Count)
	assert.Equal(t, int64(0), stats[5].Count)

	assert.Equal(t, "Expiring in 5 days", stats[0].Title)
	assert.Equal(t, "Expired in last 30 days", stats[5].Title)
}

func TestExpiryStatsIgnoresInactiveAndOtherConsumers(t *testing.T) {
	svc, store := newTestService()
	assetID := store.seedAsset(models.Asset{Name: "MRI", ConsumerID: 1})

	seedWarranty(store, 1, assetID, days(3), false) // inactive
	seedWarranty(store, 2, assetID, days(3), true)  // other consumer

	stats, err := svc.ExpiryStats(context.Background(), 1)
	require.NoError(t, err)
	for _, b := range stats {
		assert.Zero(t, b.Count)
	}
}

func TestExpiryStatsEmptyIsNotAnError(t *testing.T) {
	svc, _ := newTestService()
	stats, err := svc.ExpiryStats(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, stats, 6)
	for _, b := range stats {
		assert.Zero(t, b.Count)
	}
}

func TestExpiryStatsRequiresConsumer(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ExpiryStats(context.Background(), 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ExpiryStatsWithoutContract(context.Background(), 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestExpiryStatsWithoutContractCohort(t *testing.T) {
	svc, store := newTestService()

	uncovered := store.seedAsset(models.Asset{Name: "Ventilator", ConsumerID: 1})
	covered := store.seedAsset(models.Asset{Name: "Scanner", ConsumerID: 1})
	exempt := store.seedAsset(models.Asset{Name: "Chair", ConsumerID: 1, AmcCmcNotApplicable: true})

	store.contracts = append(store.contracts, models.ServiceContract{
		AssetID: covered, ConsumerID: 1, Status: models.ContractActive,
		EndDate: days(100),
	})

	seedWarranty(store, 1, uncovered, days(-3), true) // counted: expired 3 days ago
	seedWarranty(store, 1, covered, days(-3), true)   // excluded: asset has a contract
	seedWarranty(store, 1, exempt, days(-3), true)    // excluded: flagged asset

	stats, err := svc.ExpiryStatsWithoutContract(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[3].Count, "expired in last 5")

	// Deactivating the warranty removes it from every bucket.
	store.warranties[0].IsActive = false
	stats, err = svc.ExpiryStatsWithoutContract(context.Background(), 1)
	require.NoError(t, err)
	for _, b := range stats {
		assert.Zero(t, b.Count)
	}
}

func TestCreateWarranty(t *testing.T) {
	svc, store := newTestService()
	assetID := store.seedAsset(models.Asset{Name: "MRI", ConsumerID: 1})

	w, err := svc.Create(context.Background(), CreateInput{
		AssetID:    assetID,
		ConsumerID: 1,
		Type:       models.WarrantyExtended,
		StartDate:  days(0),
		EndDate:    days(365),
	})
	require.NoError(t, err)
	assert.True(t, w.IsActive)
	assert.NotZero(t, w.ID)
}

func TestCreateWarrantyValidation(t *testing.T) {
	svc, store := newTestService()
	assetID := store.seedAsset(models.Asset{Name: "MRI", ConsumerID: 1})

	_, err := svc.Create(context.Background(), CreateInput{
		ConsumerID: 1, Type: models.WarrantyStandard, StartDate: days(0), EndDate: days(10),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), CreateInput{
		AssetID: assetID, ConsumerID: 1, Type: "LIFETIME", StartDate: days(0), EndDate: days(10),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), CreateInput{
		AssetID: assetID, ConsumerID: 1, Type: models.WarrantyStandard, StartDate: days(10), EndDate: days(5),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), CreateInput{
		AssetID: 999, ConsumerID: 1, Type: models.WarrantyStandard, StartDate: days(0), EndDate: days(10),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
