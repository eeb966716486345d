package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"vendorhub/internal/models"
	"vendorhub/internal/orderflow"
)

// Render builds the invoice PDF for an order. It is pure presentation over an
// already-fetched order, so the console can render it without another round
// trip and the server can stream it from the invoice endpoint.
func Render(order models.Order) ([]byte, error) {
	qrPayload := fmt.Sprintf("%s|%s|%d", order.ShortID, order.ID.Hex(), time.Now().Unix())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Order Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"Order: %s\nCustomer: %s\nShipping: %s\nPlaced: %s\nStatus: %s / %s",
		order.ShortID,
		order.Customer.Name,
		order.ShippingAddress,
		order.CreatedAt.Format("02 Jan 2006 15:04"),
		order.OrderStatus,
		order.PaymentStatus,
	), "", "L", false)
	pdf.Ln(4)

	// Item table header
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(15, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "Discount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Products {
		pdf.CellFormat(70, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.0f%%", item.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", orderflow.LineTotal(item.Price, item.Quantity, item.Discount)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(135, 10, "Total Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", order.TotalAmount), "1", 1, "R", false, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 235, 35, 35, false, imgOpts, 0, "")

	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "Generated by the vendor console.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
