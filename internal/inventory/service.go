package inventory

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

// Service is the inventory accounting engine. It owns the quantity
// invariants on Inventory and DepartmentInventory and is the only writer of
// both; every operation runs inside one store transaction.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// TransferInput carries one stock movement. Optional fields are pointers;
// nil means absent.
type TransferInput struct {
	InventoryID  uint
	Quantity     int64
	Type         models.TransactionType
	DepartmentID *uint
	SupplierID   *uint
	GRNItemID    *uint
	POLineItemID *uint
	ExpiredAt    *time.Time
	Reason       string
}

// ReceiptInput describes incoming stock. With ItemID set and a matching
// unit the existing row is restocked; a different unit forks a new SKU.
type ReceiptInput struct {
	ItemID       *uint
	ItemName     string
	Quantity     int64
	UnitMeasure  models.UnitMeasure
	ConsumerID   uint
	SupplierID   *uint
	GRNItemID    *uint
	POLineItemID *uint
}

// ApplyTransfer applies one stock movement atomically: validates the
// invariants, adjusts the central and (for DEPT_* codes) the department
// pool, and appends exactly one transaction log row. On any failure no
// write survives.
func (s *Service) ApplyTransfer(ctx context.Context, in TransferInput) (*models.Inventory, error) {
	if in.InventoryID == 0 {
		return nil, apperr.Validationf("inventory_id is required")
	}
	if in.Quantity <= 0 {
		return nil, apperr.Validationf("quantity must be positive, got %d", in.Quantity)
	}
	if !in.Type.Valid() {
		return nil, apperr.Validationf("unknown transaction type %q", in.Type)
	}
	if touchesDepartment(in.Type) && in.DepartmentID == nil {
		return nil, apperr.Validationf("department_id is required for %s", in.Type)
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		inv, err := tx.FindInventory(ctx, in.InventoryID)
		if err != nil {
			return err
		}

		if in.Type == models.TxDeptOut && inv.Quantity < in.Quantity {
			return &apperr.InsufficientStockError{
				InventoryID: inv.ID,
				Requested:   in.Quantity,
				Available:   inv.Quantity,
			}
		}

		if in.DepartmentID != nil {
			if err := s.applyDepartmentLeg(ctx, tx, inv, in); err != nil {
				return err
			}
		}

		if in.Type.Outgoing() {
			if inv.Quantity < in.Quantity {
				return &apperr.InsufficientStockError{
					InventoryID: inv.ID,
					Requested:   in.Quantity,
					Available:   inv.Quantity,
				}
			}
			inv.Quantity -= in.Quantity
		} else {
			inv.Quantity += in.Quantity
		}
		if err := tx.SaveInventory(ctx, inv); err != nil {
			return err
		}

		entry := &models.InventoryTransaction{
			InventoryID:  inv.ID,
			DepartmentID: in.DepartmentID,
			Quantity:     in.Quantity,
			Type:         in.Type,
			SupplierID:   in.SupplierID,
			GRNItemID:    in.GRNItemID,
			POLineItemID: in.POLineItemID,
			ExpiredAt:    in.ExpiredAt,
			Reason:       in.Reason,
		}
		return tx.CreateTransaction(ctx, entry)
	})
	if err != nil {
		return nil, wrapTxErr("apply transfer", err)
	}

	s.logger.Info("stock transfer applied",
		zap.Uint("inventory_id", in.InventoryID),
		zap.String("type", string(in.Type)),
		zap.Int64("quantity", in.Quantity))

	return s.store.FindInventoryWithRelations(ctx, in.InventoryID)
}

// applyDepartmentLeg keeps the department pool consistent with the
// movement. Issue upserts the pair row and adds; returns require an
// existing row with enough balance and subtract. Other codes leave
// department stock untouched even when a department is named on the entry.
func (s *Service) applyDepartmentLeg(ctx context.Context, tx Store, inv *models.Inventory, in TransferInput) error {
	switch in.Type {
	case models.TxDeptOut:
		di, err := tx.FindDepartmentInventory(ctx, *in.DepartmentID, inv.ID)
		if errors.Is(err, apperr.ErrNotFound) {
			if _, err := tx.FindDepartment(ctx, *in.DepartmentID); err != nil {
				return err
			}
			return tx.CreateDepartmentInventory(ctx, &models.DepartmentInventory{
				DepartmentID: *in.DepartmentID,
				InventoryID:  inv.ID,
				Quantity:     in.Quantity,
			})
		}
		if err != nil {
			return err
		}
		di.Quantity += in.Quantity
		return tx.SaveDepartmentInventory(ctx, di)

	case models.TxDeptExpiredReturn, models.TxDeptGeneralReturn:
		di, err := tx.FindDepartmentInventory(ctx, *in.DepartmentID, inv.ID)
		if err != nil {
			return err
		}
		if di.Quantity < in.Quantity {
			return &apperr.InsufficientStockError{
				InventoryID:  inv.ID,
				DepartmentID: in.DepartmentID,
				Requested:    in.Quantity,
				Available:    di.Quantity,
			}
		}
		di.Quantity -= in.Quantity
		return tx.SaveDepartmentInventory(ctx, di)
	}
	return nil
}

// ReceiveOrRestock books incoming stock. Same-unit receipts increment the
// referenced item; a unit mismatch creates a distinct SKU instead of mixing
// units; without an item reference a new row is always created. Every path
// appends one IN log entry.
func (s *Service) ReceiveOrRestock(ctx context.Context, in ReceiptInput) (*models.Inventory, error) {
	if in.Quantity <= 0 {
		return nil, apperr.Validationf("quantity must be positive, got %d", in.Quantity)
	}
	if in.UnitMeasure != "" && !in.UnitMeasure.Valid() {
		return nil, apperr.Validationf("unknown unit measure %q", in.UnitMeasure)
	}
	if in.ItemID == nil {
		if in.ItemName == "" {
			return nil, apperr.Validationf("item_name is required when no item_id is given")
		}
		if !in.UnitMeasure.Valid() {
			return nil, apperr.Validationf("unit_measure is required when no item_id is given")
		}
		if in.ConsumerID == 0 {
			return nil, apperr.Validationf("consumer_id is required when no item_id is given")
		}
	}

	var targetID uint
	err := s.store.Transaction(ctx, func(tx Store) error {
		var target *models.Inventory

		if in.ItemID != nil {
			existing, err := tx.FindInventory(ctx, *in.ItemID)
			if err != nil {
				return err
			}
			if in.UnitMeasure == "" || in.UnitMeasure == existing.UnitMeasure {
				existing.Quantity += in.Quantity
				if err := tx.SaveInventory(ctx, existing); err != nil {
					return err
				}
				target = existing
			} else {
				// Incompatible unit: fork a new SKU rather than merge.
				target = &models.Inventory{
					Name:        pickName(in.ItemName, existing.Name),
					ItemNo:      entityid.New(entityid.PrefixInventory),
					Quantity:    in.Quantity,
					UnitMeasure: in.UnitMeasure,
					ConsumerID:  pickConsumer(in.ConsumerID, existing.ConsumerID),
				}
				if err := tx.CreateInventory(ctx, target); err != nil {
					return err
				}
			}
		} else {
			target = &models.Inventory{
				Name:        in.ItemName,
				ItemNo:      entityid.New(entityid.PrefixInventory),
				Quantity:    in.Quantity,
				UnitMeasure: in.UnitMeasure,
				ConsumerID:  in.ConsumerID,
			}
			if err := tx.CreateInventory(ctx, target); err != nil {
				return err
			}
		}

		targetID = target.ID
		return tx.CreateTransaction(ctx, &models.InventoryTransaction{
			InventoryID:  target.ID,
			Quantity:     in.Quantity,
			Type:         models.TxIn,
			SupplierID:   in.SupplierID,
			GRNItemID:    in.GRNItemID,
			POLineItemID: in.POLineItemID,
		})
	})
	if err != nil {
		return nil, wrapTxErr("receive stock", err)
	}

	s.logger.Info("stock received",
		zap.Uint("inventory_id", targetID),
		zap.Int64("quantity", in.Quantity))

	return s.store.FindInventoryWithRelations(ctx, targetID)
}

// Get returns one inventory aggregate with its department breakdown and
// transaction history.
func (s *Service) Get(ctx context.Context, id uint) (*models.Inventory, error) {
	return s.store.FindInventoryWithRelations(ctx, id)
}

// List returns the inventories of one consumer (all when consumerID is 0).
func (s *Service) List(ctx context.Context, consumerID uint) ([]models.Inventory, error) {
	return s.store.ListInventories(ctx, consumerID)
}

// Ledger returns the full transaction history of one inventory.
func (s *Service) Ledger(ctx context.Context, inventoryID uint) (*models.Inventory, []models.InventoryTransaction, error) {
	inv, err := s.store.FindInventory(ctx, inventoryID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.store.ListTransactions(ctx, inventoryID)
	if err != nil {
		return nil, nil, err
	}
	return inv, entries, nil
}

func touchesDepartment(t models.TransactionType) bool {
	switch t {
	case models.TxDeptOut, models.TxDeptExpiredReturn, models.TxDeptGeneralReturn:
		return true
	}
	return false
}

func pickName(requested, existing string) string {
	if requested != "" {
		return requested
	}
	return existing
}

func pickConsumer(requested, existing uint) uint {
	if requested != 0 {
		return requested
	}
	return existing
}

// wrapTxErr keeps taxonomy errors intact and brands everything else (driver
// failures, constraint violations) as an aborted transaction.
func wrapTxErr(op string, err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrInsufficientStock):
		return err
	default:
		return fmt.Errorf("%s: %w: %v", op, apperr.ErrTransactionAborted, err)
	}
}
