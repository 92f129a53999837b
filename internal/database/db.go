package database

import (
	"fmt"

	"assettrack-backend/internal/config"
	"assettrack-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and migrates the schema. The returned handle is
// passed down to the services; nothing holds it globally.
func Open(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Consumer{},
		&models.Supplier{},
		&models.Department{},
		&models.User{},
		&models.PurchaseOrder{},
		&models.POLineItem{},
		&models.GoodsReceipt{},
		&models.GRNItem{},
		&models.Inventory{},
		&models.DepartmentInventory{},
		&models.InventoryTransaction{},
		&models.Asset{},
		&models.AssetLocation{},
		&models.AssetInstallation{},
		&models.Warranty{},
		&models.ServiceContract{},
		&models.AuditLog{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	logger.Info("database connected, migration complete")
	return db, nil
}
