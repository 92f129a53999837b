package contract

import (
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/auth"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateContractRequest struct {
	AssetID    uint   `json:"asset_id"`
	ConsumerID uint   `json:"consumer_id"`
	SupplierID *uint  `json:"supplier_id"`
	Type       string `json:"type"` // "AMC" or "CMC"
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type ContractResponse struct {
	ID         uint   `json:"id"`
	ContractNo string `json:"contract_no"`
	AssetID    uint   `json:"asset_id"`
	ConsumerID uint   `json:"consumer_id"`
	SupplierID *uint  `json:"supplier_id,omitempty"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func toContractResponse(sc *models.ServiceContract) ContractResponse {
	return ContractResponse{
		ID:         sc.ID,
		ContractNo: sc.ContractNo,
		AssetID:    sc.AssetID,
		ConsumerID: sc.ConsumerID,
		SupplierID: sc.SupplierID,
		Type:       string(sc.Type),
		Status:     string(sc.Status),
		StartDate:  sc.StartDate.Format("2006-01-02"),
		EndDate:    sc.EndDate.Format("2006-01-02"),
	}
}

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

// POST /api/service-contracts
func CreateContractHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateContractRequest
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

		sc, err := svc.Create(c.UserContext(), CreateInput{
			AssetID:    body.AssetID,
			ConsumerID: body.ConsumerID,
			SupplierID: body.SupplierID,
			Type:       models.ContractType(body.Type),
			StartDate:  start,
			EndDate:    end,
		})
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(toContractResponse(sc))
	}
}

// GET /api/service-contracts
func ListContractsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumerID, err := resolveConsumerID(c)
		if err != nil {
			return err
		}

		scs, err := svc.List(c.UserContext(), consumerID)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]ContractResponse, 0, len(scs))
		for i := range scs {
			resp = append(resp, toContractResponse(&scs[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/service-contracts/stats
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
