package main

import (
	"strings"

	"assettrack-backend/internal/asset"
	"assettrack-backend/internal/audit"
	"assettrack-backend/internal/auth"
	"assettrack-backend/internal/config"
	"assettrack-backend/internal/contract"
	"assettrack-backend/internal/database"
	"assettrack-backend/internal/inventory"
	"assettrack-backend/internal/models"
	"assettrack-backend/internal/org"
	"assettrack-backend/internal/procurement"
	"assettrack-backend/internal/warranty"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.UsingDefaultDSN() {
		logger.Warn("DATABASE_DSN not set, using local default")
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	recorder := audit.NewRecorder(db)
	inventorySvc := inventory.NewService(inventory.NewStore(db), logger)
	warrantySvc := warranty.NewService(warranty.NewStore(db), logger)
	contractSvc := contract.NewService(contract.NewStore(db), logger)
	assetSvc := asset.NewService(asset.NewStore(db), logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Admin-only master data
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/consumers", org.CreateConsumerHandler(db))
	adminRoutes.Post("/departments", org.CreateDepartmentHandler(db))
	adminRoutes.Put("/departments/:id", org.UpdateDepartmentHandler(db))
	adminRoutes.Post("/suppliers", org.CreateSupplierHandler(db))

	// Master data reads
	protected.Get("/consumers", org.ListConsumersHandler(db))
	protected.Get("/departments", org.ListDepartmentsHandler(db))
	protected.Get("/suppliers", org.ListSuppliersHandler(db))

	// Stock movements
	protected.Post("/inventories/transfer", inventory.ApplyTransferHandler(inventorySvc, recorder))
	protected.Post("/inventories/receive", inventory.ReceiveHandler(inventorySvc, recorder))
	protected.Get("/inventories", inventory.ListInventoriesHandler(inventorySvc))
	protected.Get("/inventories/:id", inventory.GetInventoryHandler(inventorySvc))
	protected.Get("/inventories/:id/transactions", inventory.ListTransactionsHandler(inventorySvc))
	protected.Get("/inventories/:id/transactions/export", inventory.ExportLedgerHandler(inventorySvc))

	// Procurement paperwork
	protected.Post("/purchase-orders", procurement.CreatePurchaseOrderHandler(db))
	protected.Get("/purchase-orders", procurement.ListPurchaseOrdersHandler(db))
	protected.Post("/goods-receipts", procurement.CreateGoodsReceiptHandler(db))
	protected.Get("/goods-receipts", procurement.ListGoodsReceiptsHandler(db))

	// Assets
	protected.Post("/assets", asset.OnboardAssetHandler(assetSvc, recorder))
	protected.Get("/assets", asset.ListAssetsHandler(assetSvc))
	protected.Get("/assets/:id", asset.GetAssetHandler(assetSvc))

	// Warranties
	protected.Post("/warranties", warranty.CreateWarrantyHandler(warrantySvc))
	protected.Get("/warranties", warranty.ListWarrantiesHandler(warrantySvc))
	protected.Get("/warranties/stats", warranty.ExpiryStatsHandler(warrantySvc))
	protected.Get("/warranties/stats/without-amc-cmc", warranty.ExpiryStatsWithoutContractHandler(warrantySvc))

	// Service contracts
	protected.Post("/service-contracts", contract.CreateContractHandler(contractSvc))
	protected.Get("/service-contracts", contract.ListContractsHandler(contractSvc))
	protected.Get("/service-contracts/stats", contract.ExpiryStatsHandler(contractSvc))

	// Audit trail
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	logger.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
