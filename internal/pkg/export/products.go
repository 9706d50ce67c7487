// internal/pkg/export/products.go
package export

import (
	"fmt"
	"io"

	"github.com/gaming-palace/storefront/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// ContentTypeXLSX is the MIME type of the generated workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productHeaders = []string{
	"ID", "Name", "Category", "Price", "OriginalPrice", "Rating",
	"ReviewCount", "InStock", "IsHot", "ImageURL", "CreatedAt",
}

// WriteProducts writes the catalog as a single-sheet workbook
func WriteProducts(w io.Writer, products []product.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range productHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for i := range products {
		p := &products[i]
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(optionalDecimal(p.OriginalPrice, 2))
		row.AddCell().SetValue(optionalDecimal(p.Rating, 1))
		if p.ReviewCount != nil {
			row.AddCell().SetValue(*p.ReviewCount)
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(p.InStock)
		row.AddCell().SetValue(p.IsHot)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func optionalDecimal(d *decimal.Decimal, places int32) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(places)
}
