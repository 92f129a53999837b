package models

import "time"

// TransactionType: closed set of stock movement codes. Adding a code means
// updating Valid and Outgoing together; the accounting engine switches on
// this type exhaustively.
type TransactionType string

const (
	TxDeptExpiredReturn TransactionType = "DEPT_EXPIRED_RETURN"
	TxDeptGeneralReturn TransactionType = "DEPT_GENERAL_RETURN"
	TxDeptOut           TransactionType = "DEPT_OUT"
	TxDisposed          TransactionType = "DISPOSED"
	TxIn                TransactionType = "IN"
	TxResale            TransactionType = "RESALE"
	TxSupplierReturn    TransactionType = "SUPPLIER_RETURN"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxDeptExpiredReturn, TxDeptGeneralReturn, TxDeptOut, TxDisposed, TxIn, TxResale, TxSupplierReturn:
		return true
	}
	return false
}

// Outgoing reports whether the movement drains the central pool.
// Department returns restock the pool, so they count as incoming.
func (t TransactionType) Outgoing() bool {
	switch t {
	case TxDeptOut, TxDisposed, TxResale, TxSupplierReturn:
		return true
	case TxDeptExpiredReturn, TxDeptGeneralReturn, TxIn:
		return false
	}
	return false
}

// InventoryTransaction: append-only log entry, one per accounting operation.
// Rows are never updated or deleted, hence no UpdatedAt.
type InventoryTransaction struct {
	ID           uint `gorm:"primaryKey"`
	InventoryID  uint `gorm:"index;not null"`
	Inventory    Inventory
	DepartmentID *uint `gorm:"index"`
	Department   *Department
	Quantity     int64           `gorm:"not null"` // always positive; direction comes from Type
	Type         TransactionType `gorm:"type:varchar(30);not null;index"`
	SupplierID   *uint
	Supplier     *Supplier
	GRNItemID    *uint // provenance: goods-receipt line that delivered the stock
	POLineItemID *uint // provenance: purchase-order line
	ExpiredAt    *time.Time
	Reason       string `gorm:"size:500"`
	CreatedAt    time.Time
}
