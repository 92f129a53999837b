package warranty

import (
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/auth"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateWarrantyRequest struct {
	AssetID    uint   `json:"asset_id"`
	ConsumerID uint   `json:"consumer_id"`
	SupplierID *uint  `json:"supplier_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"` // "2025-01-01"
	EndDate    string `json:"end_date"`
}

type WarrantyResponse struct {
	ID         uint   `json:"id"`
	AssetID    uint   `json:"asset_id"`
	ConsumerID uint   `json:"consumer_id"`
	SupplierID *uint  `json:"supplier_id,omitempty"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	IsActive   bool   `json:"is_active"`
}

func toWarrantyResponse(w *models.Warranty) WarrantyResponse {
	return WarrantyResponse{
		ID:         w.ID,
		AssetID:    w.AssetID,
		ConsumerID: w.ConsumerID,
		SupplierID: w.SupplierID,
		Type:       string(w.Type),
		StartDate:  w.StartDate.Format("2006-01-02"),
		EndDate:    w.EndDate.Format("2006-01-02"),
		IsActive:   w.IsActive,
	}
}

// resolveConsumerID: admins pass ?consumer_id=, staff users are bound to the
// consumer on their token.
func resolveConsumerID(c *fiber.Ctx) (uint, error) {
	if cid, ok := c.Locals(auth.CtxConsumerIDKey).(*uint); ok && cid != nil {
		return *cid, nil
	}
	id := c.QueryInt("consumer_id", 0)
	if id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "consumer_id is required")
	}
	return uint(id), nil
}

// POST /api/warranties
func CreateWarrantyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWarrantyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date must be 'YYYY-MM-DD'")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must be 'YYYY-MM-DD'")
		}

		w, err := svc.Create(c.UserContext(), CreateInput{
			AssetID:    body.AssetID,
			ConsumerID: body.ConsumerID,
			SupplierID: body.SupplierID,
			Type:       models.WarrantyType(body.Type),
			StartDate:  start,
			EndDate:    end,
		})
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(toWarrantyResponse(w))
	}
}

// GET /api/warranties
func ListWarrantiesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumerID, err := resolveConsumerID(c)
		if err != nil {
			return err
		}

		ws, err := svc.List(c.UserContext(), consumerID)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]WarrantyResponse, 0, len(ws))
		for i := range ws {
			resp = append(resp, toWarrantyResponse(&ws[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/warranties/stats
func ExpiryStatsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumerID, err := resolveConsumerID(c)
		if err != nil {
			return err
		}

		stats, err := svc.ExpiryStats(c.UserContext(), consumerID)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(stats)
	}
}

// GET /api/warranties/stats/without-amc-cmc
func ExpiryStatsWithoutContractHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumerID, err := resolveConsumerID(c)
		if err != nil {
			return err
		}

		stats, err := svc.ExpiryStatsWithoutContract(c.UserContext(), consumerID)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(stats)
	}
}
