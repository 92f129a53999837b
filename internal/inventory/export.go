package inventory

import (
	"fmt"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/inventories/:id/transactions/export
// Streams the transaction ledger of one inventory item as an .xlsx file.
func ExportLedgerHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid inventory id")
		}

		inv, entries, err := svc.Ledger(c.UserContext(), uint(id))
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Date", "Type", "Quantity", "Department", "Supplier", "Expired At", "Reason"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for rowIdx, tr := range entries {
			row := rowIdx + 2
			values := []any{
				tr.CreatedAt.Format("2006-01-02 15:04:05"),
				string(tr.Type),
				tr.Quantity,
				departmentName(tr),
				supplierName(tr),
				expiredAt(tr),
				tr.Reason,
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build workbook")
		}

		filename := fmt.Sprintf("ledger-%s.xlsx", inv.ItemNo)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(buf.Bytes())
	}
}

func departmentName(tr models.InventoryTransaction) string {
	if tr.Department != nil {
		return tr.Department.Name
	}
	return ""
}

func supplierName(tr models.InventoryTransaction) string {
	if tr.Supplier != nil {
		return tr.Supplier.Name
	}
	return ""
}

func expiredAt(tr models.InventoryTransaction) string {
	if tr.ExpiredAt != nil {
		return tr.ExpiredAt.Format("2006-01-02")
	}
	return ""
}
