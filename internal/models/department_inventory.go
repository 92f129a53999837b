package models

import "time"

// DepartmentInventory: stock issued to and currently held by one department.
// At most one row per (department, inventory) pair.
type DepartmentInventory struct {
	ID           uint `gorm:"primaryKey"`
	DepartmentID uint `gorm:"not null;uniqueIndex:idx_dept_inventory"`
	Department   Department
	InventoryID  uint `gorm:"not null;uniqueIndex:idx_dept_inventory"`
	Inventory    Inventory
	Quantity     int64 `gorm:"not null;default:0"` // never exceeds issued minus returned
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
