package inventory

import (
	"context"
	"errors"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence boundary of the accounting engine. Transaction
// hands the callback a Store bound to the open transaction; the engine does
// all reads and writes of one operation through that handle.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	FindInventory(ctx context.Context, id uint) (*models.Inventory, error)
	FindInventoryWithRelations(ctx context.Context, id uint) (*models.Inventory, error)
	ListInventories(ctx context.Context, consumerID uint) ([]models.Inventory, error)
	CreateInventory(ctx context.Context, inv *models.Inventory) error
	SaveInventory(ctx context.Context, inv *models.Inventory) error

	FindDepartment(ctx context.Context, id uint) (*models.Department, error)
	FindDepartmentInventory(ctx context.Context, departmentID, inventoryID uint) (*models.DepartmentInventory, error)
	CreateDepartmentInventory(ctx context.Context, di *models.DepartmentInventory) error
	SaveDepartmentInventory(ctx context.Context, di *models.DepartmentInventory) error

	CreateTransaction(ctx context.Context, entry *models.InventoryTransaction) error
	ListTransactions(ctx context.Context, inventoryID uint) ([]models.InventoryTransaction, error)
}

type gormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, inTx: true})
	})
}

// locked returns the query scope; inside a transaction single-row reads take
// a FOR UPDATE lock so concurrent transfers against the same rows serialize.
func (s *gormStore) locked(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (s *gormStore) FindInventory(ctx context.Context, id uint) (*models.Inventory, error) {
	var inv models.Inventory
	if err := s.locked(ctx).First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("inventory %d", id)
		}
		return nil, err
	}
	return &inv, nil
}

func (s *gormStore) FindInventoryWithRelations(ctx context.Context, id uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := s.db.WithContext(ctx).
		Preload("Consumer").
		Preload("DepartmentStocks.Department").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("inventory %d", id)
		}
		return nil, err
	}
	return &inv, nil
}

func (s *gormStore) ListInventories(ctx context.Context, consumerID uint) ([]models.Inventory, error) {
	var invs []models.Inventory
	q := s.db.WithContext(ctx).Preload("DepartmentStocks.Department").Order("name ASC")
	if consumerID != 0 {
		q = q.Where("consumer_id = ?", consumerID)
	}
	if err := q.Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *gormStore) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	return s.db.WithContext(ctx).Create(inv).Error
}

func (s *gormStore) SaveInventory(ctx context.Context, inv *models.Inventory) error {
	return s.db.WithContext(ctx).Save(inv).Error
}

func (s *gormStore) FindDepartment(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := s.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("department %d", id)
		}
		return nil, err
	}
	return &dept, nil
}

func (s *gormStore) FindDepartmentInventory(ctx context.Context, departmentID, inventoryID uint) (*models.DepartmentInventory, error) {
	var di models.DepartmentInventory
	err := s.locked(ctx).
		Where("department_id = ? AND inventory_id = ?", departmentID, inventoryID).
		First(&di).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("department inventory (department %d, inventory %d)", departmentID, inventoryID)
		}
		return nil, err
	}
	return &di, nil
}

func (s *gormStore) CreateDepartmentInventory(ctx context.Context, di *models.DepartmentInventory) error {
	return s.db.WithContext(ctx).Create(di).Error
}

func (s *gormStore) SaveDepartmentInventory(ctx context.Context, di *models.DepartmentInventory) error {
	return s.db.WithContext(ctx).Save(di).Error
}

func (s *gormStore) CreateTransaction(ctx context.Context, entry *models.InventoryTransaction) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *gormStore) ListTransactions(ctx context.Context, inventoryID uint) ([]models.InventoryTransaction, error) {
	var entries []models.InventoryTransaction
	err := s.db.WithContext(ctx).
		Preload("Department").
		Preload("Supplier").
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
