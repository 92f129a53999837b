package audit

import (
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/audit-logs
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > 500 {
			limit = 100
		}

		q := db.Model(&models.AuditLog{}).Order("created_at DESC").Limit(limit)
		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}
		if id := c.QueryInt("entity_id", 0); id > 0 {
			q = q.Where("entity_id = ?", id)
		}

		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list audit logs")
		}
		return c.JSON(logs)
	}
}
