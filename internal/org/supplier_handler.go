package org

import (
	"strings"

	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

type CreateSupplierRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func toSupplierResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/suppliers
func CreateSupplierHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Supplier name is required")
		}

		sup := models.Supplier{Name: body.Name}
		if body.Email != nil {
			sup.Email = strings.TrimSpace(*body.Email)
		}
		if body.Phone != nil {
			sup.Phone = strings.TrimSpace(*body.Phone)
		}

		if err := db.Create(&sup).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create supplier")
		}

		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(&sup))
	}
}

// GET /api/suppliers
func ListSuppliersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sups []models.Supplier
		if err := db.Order("name ASC").Find(&sups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list suppliers")
		}

		resp := make([]SupplierResponse, 0, len(sups))
		for i := range sups {
			resp = append(resp, toSupplierResponse(&sups[i]))
		}
		return c.JSON(resp)
	}
}
