package org

import (
	"strings"

	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DepartmentResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ConsumerID uint   `json:"consumer_id"`
	CreatedAt  string `json:"created_at"`
}

type CreateDepartmentRequest struct {
	Name       string `json:"name"`
	ConsumerID uint   `json:"consumer_id"`
}

type UpdateDepartmentRequest struct {
	Name *string `json:"name"`
}

func toDepartmentResponse(d *models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:         d.ID,
		Name:       d.Name,
		ConsumerID: d.ConsumerID,
		CreatedAt:  d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/departments
func CreateDepartmentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDepartmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Department name is required")
		}
		if body.ConsumerID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "consumer_id is required")
		}

		var consumer models.Consumer
		if err := db.First(&consumer, body.ConsumerID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Consumer not found")
		}

		dept := models.Department{
			Name:       body.Name,
			ConsumerID: body.ConsumerID,
		}
		if err := db.Create(&dept).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create department")
		}

		return c.Status(fiber.StatusCreated).JSON(toDepartmentResponse(&dept))
	}
}

// GET /api/departments
func ListDepartmentsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Order("name ASC")
		if cid := c.QueryInt("consumer_id", 0); cid > 0 {
			q = q.Where("consumer_id = ?", cid)
		}

		var depts []models.Department
		if err := q.Find(&depts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list departments")
		}

		resp := make([]DepartmentResponse, 0, len(depts))
		for i := range depts {
			resp = append(resp, toDepartmentResponse(&depts[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/departments/:id
func UpdateDepartmentHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid department id")
		}

		var dept models.Department
		if err := db.First(&dept, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Department not found")
		}

		var body UpdateDepartmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Department name cannot be empty")
			}
			dept.Name = name
		}

		if err := db.Save(&dept).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update department")
		}
		return c.JSON(toDepartmentResponse(&dept))
	}
}
