package inventory

import (
	"fmt"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/audit"
	"assettrack-backend/internal/auth"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TransferRequest struct {
	InventoryID  uint    `json:"inventory_id"`
	Quantity     int64   `json:"quantity"`
	Type         string  `json:"transaction_type"`
	DepartmentID *uint   `json:"department_id"`
	SupplierID   *uint   `json:"supplier_id"`
	GRNItemID    *uint   `json:"grn_item_id"`
	POLineItemID *uint   `json:"po_line_item_id"`
	ExpiredAt    *string `json:"expired_at"` // "2025-12-31"
	Reason       string  `json:"reason"`
}

type ReceiveRequest struct {
	ItemID       *uint  `json:"item_id"`
	ItemName     string `json:"item_name"`
	Quantity     int64  `json:"quantity"`
	UnitMeasure  string `json:"unit_measure"`
	ConsumerID   uint   `json:"consumer_id"`
	SupplierID   *uint  `json:"supplier_id"`
	GRNItemID    *uint  `json:"grn_item_id"`
	POLineItemID *uint  `json:"po_line_item_id"`
}

type DepartmentStockResponse struct {
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Quantity       int64  `json:"quantity"`
}

type TransactionResponse struct {
	ID           uint   `json:"id"`
	Quantity     int64  `json:"quantity"`
	Type         string `json:"transaction_type"`
	DepartmentID *uint  `json:"department_id,omitempty"`
	SupplierID   *uint  `json:"supplier_id,omitempty"`
	GRNItemID    *uint  `json:"grn_item_id,omitempty"`
	POLineItemID *uint  `json:"po_line_item_id,omitempty"`
	ExpiredAt    string `json:"expired_at,omitempty"`
	Reason       string `json:"reason,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type InventoryResponse struct {
	ID               uint                      `json:"id"`
	Name             string                    `json:"name"`
	ItemNo           string                    `json:"item_no"`
	Quantity         int64                     `json:"quantity"`
	UnitMeasure      string                    `json:"unit_measure"`
	ConsumerID       uint                      `json:"consumer_id"`
	DepartmentStocks []DepartmentStockResponse `json:"department_stocks"`
	Transactions     []TransactionResponse     `json:"transactions,omitempty"`
	CreatedAt        string                    `json:"created_at"`
	UpdatedAt        string                    `json:"updated_at"`
}

func toInventoryResponse(inv *models.Inventory, withHistory bool) InventoryResponse {
	resp := InventoryResponse{
		ID:          inv.ID,
		Name:        inv.Name,
		ItemNo:      inv.ItemNo,
		Quantity:    inv.Quantity,
		UnitMeasure: string(inv.UnitMeasure),
		ConsumerID:  inv.ConsumerID,
		CreatedAt:   inv.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   inv.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	resp.DepartmentStocks = make([]DepartmentStockResponse, 0, len(inv.DepartmentStocks))
	for _, ds := range inv.DepartmentStocks {
		resp.DepartmentStocks = append(resp.DepartmentStocks, DepartmentStockResponse{
			DepartmentID:   ds.DepartmentID,
			DepartmentName: ds.Department.Name,
			Quantity:       ds.Quantity,
		})
	}
	if withHistory {
		resp.Transactions = make([]TransactionResponse, 0, len(inv.Transactions))
		for _, tr := range inv.Transactions {
			resp.Transactions = append(resp.Transactions, toTransactionResponse(tr))
		}
	}
	return resp
}

func toTransactionResponse(tr models.InventoryTransaction) TransactionResponse {
	out := TransactionResponse{
		ID:           tr.ID,
		Quantity:     tr.Quantity,
		Type:         string(tr.Type),
		DepartmentID: tr.DepartmentID,
		SupplierID:   tr.SupplierID,
		GRNItemID:    tr.GRNItemID,
		POLineItemID: tr.POLineItemID,
		Reason:       tr.Reason,
		CreatedAt:    tr.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if tr.ExpiredAt != nil {
		out.ExpiredAt = tr.ExpiredAt.Format("2006-01-02")
	}
	return out
}

// POST /api/inventories/transfer
func ApplyTransferHandler(svc *Service, recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		in := TransferInput{
			InventoryID:  body.InventoryID,
			Quantity:     body.Quantity,
			Type:         models.TransactionType(body.Type),
			DepartmentID: body.DepartmentID,
			SupplierID:   body.SupplierID,
			GRNItemID:    body.GRNItemID,
			POLineItemID: body.POLineItemID,
			Reason:       body.Reason,
		}
		if body.ExpiredAt != nil {
			d, err := time.Parse("2006-01-02", *body.ExpiredAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expired_at must be 'YYYY-MM-DD'")
			}
			in.ExpiredAt = &d
		}

		inv, err := svc.ApplyTransfer(c.UserContext(), in)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			_ = recorder.Write(audit.LogOptions{
				UserID:      userID,
				EntityType:  "inventory",
				EntityID:    inv.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Stock transfer %s: %d x %s", body.Type, body.Quantity, inv.Name),
				After:       inv,
			})
		}

		return c.JSON(toInventoryResponse(inv, true))
	}
}

// POST /api/inventories/receive
func ReceiveHandler(svc *Service, recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReceiveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		consumerID := body.ConsumerID
		if consumerID == 0 {
			if cid, ok := c.Locals(auth.CtxConsumerIDKey).(*uint); ok && cid != nil {
				consumerID = *cid
			}
		}

		inv, err := svc.ReceiveOrRestock(c.UserContext(), ReceiptInput{
			ItemID:       body.ItemID,
			ItemName:     body.ItemName,
			Quantity:     body.Quantity,
			UnitMeasure:  models.UnitMeasure(body.UnitMeasure),
			ConsumerID:   consumerID,
			SupplierID:   body.SupplierID,
			GRNItemID:    body.GRNItemID,
			POLineItemID: body.POLineItemID,
		})
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			_ = recorder.Write(audit.LogOptions{
				UserID:      userID,
				EntityType:  "inventory",
				EntityID:    inv.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Stock received: %d x %s", body.Quantity, inv.Name),
				After:       inv,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toInventoryResponse(inv, true))
	}
}

// GET /api/inventories
func ListInventoriesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumerID := uint(c.QueryInt("consumer_id", 0))
		if consumerID == 0 {
			if cid, ok := c.Locals(auth.CtxConsumerIDKey).(*uint); ok && cid != nil {
				consumerID = *cid
			}
		}

		invs, err := svc.List(c.UserContext(), consumerID)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]InventoryResponse, 0, len(invs))
		for i := range invs {
			resp = append(resp, toInventoryResponse(&invs[i], false))
		}
		return c.JSON(resp)
	}
}

// GET /api/inventories/:id/transactions
func ListTransactionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid inventory id")
		}

		_, trs, err := svc.Ledger(c.UserContext(), uint(id))
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]TransactionResponse, 0, len(trs))
		for _, tr := range trs {
			resp = append(resp, toTransactionResponse(tr))
		}
		return c.JSON(resp)
	}
}

// GET /api/inventories/:id
func GetInventoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid inventory id")
		}

		inv, err := svc.Get(c.UserContext(), uint(id))
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}
		return c.JSON(toInventoryResponse(inv, true))
	}
}
