package infra

import (
	"bytes"
	"fmt"
	"strings"

	"auromart/internal/model"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// humanize turns enum values such as out_for_delivery into "Out For Delivery".
func humanize(v string) string {
	return titleCaser.String(strings.ReplaceAll(v, "_", " "))
}

// GenerateInvoicePDF renders an A4 invoice for order. The order must have its
// Items (with Product), Retailer and Distributor loaded.
func GenerateInvoicePDF(inv *model.Invoice, order *model.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: invoice %s has no order", inv.InvoiceNumber)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Invoice No: "+inv.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Order No: "+order.OrderNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Date: "+inv.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Status: "+humanize(string(order.Status)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Delivery: "+humanize(string(order.DeliveryMode)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	half := contentW / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 6, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	from, to := partyLines(order.Distributor), partyLines(order.Retailer)
	for i := 0; i < max(len(from), len(to)); i++ {
		pdf.CellFormat(half, 5, tr(lineAt(from, i)), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, tr(lineAt(to, i)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	colName := contentW * 0.46
	colSKU := contentW * 0.18
	colQty := contentW * 0.10
	colAmt := contentW * 0.13

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(colName, 7, "Product", "B", 0, "L", true, 0, "")
	pdf.CellFormat(colSKU, 7, "SKU", "B", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, "Qty", "B", 0, "C", true, 0, "")
	pdf.CellFormat(colAmt, 7, "Unit", "B", 0, "R", true, 0, "")
	pdf.CellFormat(colAmt, 7, "Total", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		name, sku := item.ProductID.String()[:8], ""
		if item.Product != nil {
			name, sku = item.Product.Name, item.Product.SKU
		}
		if len(name) > 48 {
			name = name[:47] + "..."
		}
		pdf.CellFormat(colName, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(colSKU, 6, tr(sku), "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(colAmt, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmt, 6, item.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW-colAmt, 8, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 8, order.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	if order.Notes != nil && *order.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, tr("Notes: "+*order.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func partyLines(u *model.User) []string {
	if u == nil {
		return nil
	}
	lines := []string{u.DisplayName()}
	if u.Address != nil && *u.Address != "" {
		lines = append(lines, *u.Address)
	}
	if u.PhoneNumber != nil && *u.PhoneNumber != "" {
		lines = append(lines, *u.PhoneNumber)
	}
	return append(lines, u.Email)
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
