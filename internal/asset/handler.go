package asset

import (
	"fmt"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/audit"
	"assettrack-backend/internal/auth"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OnboardRequest struct {
	Name         string `json:"name"`
	SerialNo     string `json:"serial_no"`
	ConsumerID   uint   `json:"consumer_id"`
	SupplierID   *uint  `json:"supplier_id"`
	DepartmentID *uint  `json:"department_id"`

	WarrantyNotApplicable bool `json:"warranty_not_applicable"`
	AmcCmcNotApplicable   bool `json:"amc_cmc_not_applicable"`

	Building string `json:"building"`
	Floor    string `json:"floor"`
	Room     string `json:"room"`

	InstalledAt string `json:"installed_at"` // "2025-06-01"
	InstalledBy string `json:"installed_by"`
	Notes       string `json:"notes"`

	WarrantyType   string `json:"warranty_type"`
	WarrantyMonths int    `json:"warranty_months"`
}

type AssetResponse struct {
	ID           uint   `json:"id"`
	AssetNo      string `json:"asset_no"`
	Name         string `json:"name"`
	SerialNo     string `json:"serial_no"`
	Status       string `json:"status"`
	ConsumerID   uint   `json:"consumer_id"`
	SupplierID   *uint  `json:"supplier_id,omitempty"`
	DepartmentID *uint  `json:"department_id,omitempty"`
	Building     string `json:"building,omitempty"`
	Floor        string `json:"floor,omitempty"`
	Room         string `json:"room,omitempty"`
	Warranties   int    `json:"warranty_count"`
	Contracts    int    `json:"contract_count"`
	CreatedAt    string `json:"created_at"`
}

func toAssetResponse(a *models.Asset) AssetResponse {
	resp := AssetResponse{
		ID:           a.ID,
		AssetNo:      a.AssetNo,
		Name:         a.Name,
		SerialNo:     a.SerialNo,
		Status:       string(a.Status),
		ConsumerID:   a.ConsumerID,
		SupplierID:   a.SupplierID,
		DepartmentID: a.DepartmentID,
		Warranties:   len(a.Warranties),
		Contracts:    len(a.ServiceContracts),
		CreatedAt:    a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if a.Location != nil {
		resp.Building = a.Location.Building
		resp.Floor = a.Location.Floor
		resp.Room = a.Location.Room
	}
	return resp
}

// POST /api/assets
func OnboardAssetHandler(svc *Service, recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OnboardRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		installedAt, err := time.Parse("2006-01-02", body.InstalledAt)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "installed_at must be 'YYYY-MM-DD'")
		}

		a, err := svc.Onboard(c.UserContext(), OnboardInput{
			Name:                  body.Name,
			SerialNo:              body.SerialNo,
			ConsumerID:            body.ConsumerID,
			SupplierID:            body.SupplierID,
			DepartmentID:          body.DepartmentID,
			WarrantyNotApplicable: body.WarrantyNotApplicable,
			AmcCmcNotApplicable:   body.AmcCmcNotApplicable,
			Building:              body.Building,
			Floor:                 body.Floor,
			Room:                  body.Room,
			InstalledAt:           installedAt,
			InstalledBy:           body.InstalledBy,
			Notes:                 body.Notes,
			WarrantyType:          models.WarrantyType(body.WarrantyType),
			WarrantyMonths:        body.WarrantyMonths,
		})
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			_ = recorder.Write(audit.LogOptions{
				UserID:      userID,
				EntityType:  "asset",
				EntityID:    a.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Asset onboarded: %s (%s)", a.Name, a.AssetNo),
				After:       a,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toAssetResponse(a))
	}
}

// GET /api/assets
func ListAssetsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumerID := uint(c.QueryInt("consumer_id", 0))
		if consumerID == 0 {
			if cid, ok := c.Locals(auth.CtxConsumerIDKey).(*uint); ok && cid != nil {
				consumerID = *cid
			}
		}

		assets, err := svc.List(c.UserContext(), consumerID)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]AssetResponse, 0, len(assets))
		for i := range assets {
			resp = append(resp, toAssetResponse(&assets[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/assets/:id
func GetAssetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid asset id")
		}

		a, err := svc.Get(c.UserContext(), uint(id))
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(toAssetResponse(a))
	}
}
