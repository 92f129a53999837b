package models

import "time"

// UnitMeasure: unit the quantity of an inventory item is counted in.
// Quantity arithmetic is only meaningful within one unit, so a receipt
// with a different unit forks a new Inventory row instead of merging.
type UnitMeasure string

const (
	UnitPiece UnitMeasure = "PIECE"
	UnitBox   UnitMeasure = "BOX"
	UnitKg    UnitMeasure = "KG"
	UnitLitre UnitMeasure = "LITRE"
	UnitMeter UnitMeasure = "METER"
	UnitSet   UnitMeasure = "SET"
)

func (u UnitMeasure) Valid() bool {
	switch u {
	case UnitPiece, UnitBox, UnitKg, UnitLitre, UnitMeter, UnitSet:
		return true
	}
	return false
}

// Inventory: one stock-keeping record. Quantity is the central pool;
// stock held by departments lives in DepartmentInventory rows.
type Inventory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;index"`
	ItemNo      string `gorm:"size:20;not null;uniqueIndex"` // generated, e.g. "INV0481653377"
	Quantity    int64  `gorm:"not null;default:0"`           // never negative
	UnitMeasure UnitMeasure `gorm:"type:varchar(10);not null"`
	ConsumerID  uint        `gorm:"index;not null"`
	Consumer    Consumer
	CreatedAt   time.Time
	UpdatedAt   time.Time

	DepartmentStocks []DepartmentInventory  `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
	Transactions     []InventoryTransaction `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
}
