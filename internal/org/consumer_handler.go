package org

import (
	"strings"

	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ConsumerResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

type CreateConsumerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func toConsumerResponse(con *models.Consumer) ConsumerResponse {
	return ConsumerResponse{
		ID:        con.ID,
		Name:      con.Name,
		Address:   con.Address,
		CreatedAt: con.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/consumers
func CreateConsumerHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateConsumerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Consumer name is required")
		}

		con := models.Consumer{
			Name:    body.Name,
			Address: body.Address,
		}
		if err := db.Create(&con).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create consumer")
		}

		return c.Status(fiber.StatusCreated).JSON(toConsumerResponse(&con))
	}
}

// GET /api/consumers
func ListConsumersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cons []models.Consumer
		if err := db.Order("name ASC").Find(&cons).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list consumers")
		}

		resp := make([]ConsumerResponse, 0, len(cons))
		for i := range cons {
			resp = append(resp, toConsumerResponse(&cons[i]))
		}
		return c.JSON(resp)
	}
}
