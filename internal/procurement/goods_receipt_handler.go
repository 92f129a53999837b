package procurement

import (
	"errors"
	"time"

	"assettrack-backend/internal/entityid"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GRNItemRequest struct {
	POLineItemID *uint  `json:"po_line_item_id"`
	ItemName     string `json:"item_name"`
	Quantity     int64  `json:"quantity"`
	UnitMeasure  string `json:"unit_measure"`
}

type CreateGoodsReceiptRequest struct {
	PurchaseOrderID *uint            `json:"purchase_order_id"`
	SupplierID      uint             `json:"supplier_id"`
	ReceivedDate    string           `json:"received_date"` // "2025-06-08"
	Note            string           `json:"note"`
	Items           []GRNItemRequest `json:"items"`
}

type GRNItemResponse struct {
	ID           uint   `json:"id"`
	POLineItemID *uint  `json:"po_line_item_id,omitempty"`
	ItemName     string `json:"item_name"`
	Quantity     int64  `json:"quantity"`
	UnitMeasure  string `json:"unit_measure"`
}

type GoodsReceiptResponse struct {
	ID              uint              `json:"id"`
	GRNNo           string            `json:"grn_no"`
	PurchaseOrderID *uint             `json:"purchase_order_id,omitempty"`
	SupplierID      uint              `json:"supplier_id"`
	ReceivedDate    string            `json:"received_date"`
	Note            string            `json:"note"`
	Items           []GRNItemResponse `json:"items"`
	CreatedAt       string            `json:"created_at"`
}

func toGoodsReceiptResponse(gr *models.GoodsReceipt) GoodsReceiptResponse {
	resp := GoodsReceiptResponse{
		ID:              gr.ID,
		GRNNo:           gr.GRNNo,
		PurchaseOrderID: gr.PurchaseOrderID,
		SupplierID:      gr.SupplierID,
		ReceivedDate:    gr.ReceivedDate.Format("2006-01-02"),
		Note:            gr.Note,
		CreatedAt:       gr.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	resp.Items = make([]GRNItemResponse, 0, len(gr.Items))
	for _, it := range gr.Items {
		resp.Items = append(resp.Items, GRNItemResponse{
			ID:           it.ID,
			POLineItemID: it.POLineItemID,
			ItemName:     it.ItemName,
			Quantity:     it.Quantity,
			UnitMeasure:  string(it.UnitMeasure),
		})
	}
	return resp
}

// POST /api/goods-receipts
func CreateGoodsReceiptHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGoodsReceiptRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.SupplierID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "supplier_id is required")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one received item is required")
		}

		receivedDate, err := time.Parse("2006-01-02", body.ReceivedDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "received_date must be 'YYYY-MM-DD'")
		}

		// A GRN may reference an order, but the order must exist when it does.
		if body.PurchaseOrderID != nil {
			var po models.PurchaseOrder
			if err := db.First(&po, *body.PurchaseOrderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up purchase order")
			}
		}

		gr := models.GoodsReceipt{
			GRNNo:           entityid.New(entityid.PrefixGoodsReceipt),
			PurchaseOrderID: body.PurchaseOrderID,
			SupplierID:      body.SupplierID,
			ReceivedDate:    receivedDate,
			Note:            body.Note,
		}
		for _, it := range body.Items {
			um := models.UnitMeasure(it.UnitMeasure)
			if it.ItemName == "" || it.Quantity <= 0 || !um.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Each item needs a name, positive quantity and valid unit")
			}
			gr.Items = append(gr.Items, models.GRNItem{
				POLineItemID: it.POLineItemID,
				ItemName:     it.ItemName,
				Quantity:     it.Quantity,
				UnitMeasure:  um,
			})
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&gr).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create goods receipt")
		}

		return c.Status(fiber.StatusCreated).JSON(toGoodsReceiptResponse(&gr))
	}
}

// GET /api/goods-receipts
func ListGoodsReceiptsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Preload("Items").Order("received_date DESC")
		if sid := c.QueryInt("supplier_id", 0); sid > 0 {
			q = q.Where("supplier_id = ?", sid)
		}
		if poid := c.QueryInt("purchase_order_id", 0); poid > 0 {
			q = q.Where("purchase_order_id = ?", poid)
		}

		var grs []models.GoodsReceipt
		if err := q.Find(&grs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list goods receipts")
		}

		resp := make([]GoodsReceiptResponse, 0, len(grs))
		for i := range grs {
			resp = append(resp, toGoodsReceiptResponse(&grs[i]))
		}
		return c.JSON(resp)
	}
}
