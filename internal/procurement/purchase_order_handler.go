package procurement

import (
	"time"

	"assettrack-backend/internal/entityid"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type POLineItemRequest struct {
	ItemName    string  `json:"item_name"`
	Quantity    int64   `json:"quantity"`
	UnitMeasure string  `json:"unit_measure"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreatePurchaseOrderRequest struct {
	ConsumerID uint                `json:"consumer_id"`
	SupplierID uint                `json:"supplier_id"`
	OrderDate  string              `json:"order_date"` // "2025-06-01"
	Note       string              `json:"note"`
	Items      []POLineItemRequest `json:"items"`
}

type POLineItemResponse struct {
	ID          uint    `json:"id"`
	ItemName    string  `json:"item_name"`
	Quantity    int64   `json:"quantity"`
	UnitMeasure string  `json:"unit_measure"`
	UnitPrice   float64 `json:"unit_price"`
}

type PurchaseOrderResponse struct {
	ID         uint                 `json:"id"`
	OrderNo    string               `json:"order_no"`
	ConsumerID uint                 `json:"consumer_id"`
	SupplierID uint                 `json:"supplier_id"`
	OrderDate  string               `json:"order_date"`
	Note       string               `json:"note"`
	Items      []POLineItemResponse `json:"items"`
	CreatedAt  string               `json:"created_at"`
}

func toPurchaseOrderResponse(po *models.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:         po.ID,
		OrderNo:    po.OrderNo,
		ConsumerID: po.ConsumerID,
		SupplierID: po.SupplierID,
		OrderDate:  po.OrderDate.Format("2006-01-02"),
		Note:       po.Note,
		CreatedAt:  po.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	resp.Items = make([]POLineItemResponse, 0, len(po.LineItems))
	for _, it := range po.LineItems {
		resp.Items = append(resp.Items, POLineItemResponse{
			ID:          it.ID,
			ItemName:    it.ItemName,
			Quantity:    it.Quantity,
			UnitMeasure: string(it.UnitMeasure),
			UnitPrice:   it.UnitPrice,
		})
	}
	return resp
}

// POST /api/purchase-orders
func CreatePurchaseOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ConsumerID == 0 || body.SupplierID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "consumer_id and supplier_id are required")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one line item is required")
		}

		orderDate, err := time.Parse("2006-01-02", body.OrderDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "order_date must be 'YYYY-MM-DD'")
		}

		po := models.PurchaseOrder{
			OrderNo:    entityid.New(entityid.PrefixPurchaseOrder),
			ConsumerID: body.ConsumerID,
			SupplierID: body.SupplierID,
			OrderDate:  orderDate,
			Note:       body.Note,
		}
		for _, it := range body.Items {
			um := models.UnitMeasure(it.UnitMeasure)
			if it.ItemName == "" || it.Quantity <= 0 || !um.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "Each item needs a name, positive quantity and valid unit")
			}
			po.LineItems = append(po.LineItems, models.POLineItem{
				ItemName:    it.ItemName,
				Quantity:    it.Quantity,
				UnitMeasure: um,
				UnitPrice:   it.UnitPrice,
			})
		}

		// Parent and line items land together.
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&po).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create purchase order")
		}

		return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(&po))
	}
}

// GET /api/purchase-orders
func ListPurchaseOrdersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := db.Preload("LineItems").Order("order_date DESC")
		if cid := c.QueryInt("consumer_id", 0); cid > 0 {
			q = q.Where("consumer_id = ?", cid)
		}

		var pos []models.PurchaseOrder
		if err := q.Find(&pos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list purchase orders")
		}

		resp := make([]PurchaseOrderResponse, 0, len(pos))
		for i := range pos {
			resp = append(resp, toPurchaseOrderResponse(&pos[i]))
		}
		return c.JSON(resp)
	}
}
