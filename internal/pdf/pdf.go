// Package pdf renders an invoice to a fixed-layout A4 document. Rendering
// is a pure function of the invoice, labels and shop name; absent optional
// customer fields are skipped rather than failing the document.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/SauravKesari/billify/internal/models"
)

// Labels are the document strings. Exports always use EnglishLabels
// regardless of the display language.
type Labels struct {
	Title      string
	InvoiceNum string
	Date       string
	BillTo     string
	Item       string
	Quantity   string
	Price      string
	Total      string
	Subtotal   string
	Tax        string
	GrandTotal string
}

// EnglishLabels is the fixed label set used for every export.
func EnglishLabels() Labels {
	return Labels{
		Title:      "INVOICE",
		InvoiceNum: "Invoice #",
		Date:       "Date",
		BillTo:     "Bill To",
		Item:       "Item",
		Quantity:   "Qty",
		Price:      "Price",
		Total:      "Total",
		Subtotal:   "Subtotal",
		Tax:        "Tax",
		GrandTotal: "Grand Total",
	}
}

// Filename derives the artifact name from the invoice number.
func Filename(inv models.Invoice) string {
	return fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNumber)
}

// Render produces the PDF bytes: shop header, title with number and date,
// bill-to block, item table and totals.
func Render(inv models.Invoice, labels Labels, shopName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(14, 14, 14)
	doc.AddPage()

	// Shop name top left, title and invoice details top right.
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(79, 70, 229)
	doc.Text(14, 20, shopName)
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(0, 0, 0)
	doc.Text(140, 20, labels.Title)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	doc.Text(140, 28, fmt.Sprintf("%s %s", labels.InvoiceNum, inv.InvoiceNumber))
	doc.Text(140, 33, fmt.Sprintf("%s: %s", labels.Date, inv.Date.Format("02/01/2006")))

	// Bill-to block; optional lines are omitted when empty.
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.Text(14, 45, labels.BillTo)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(80, 80, 80)
	y := 52.0
	doc.Text(14, y, inv.CustomerName)
	y += 5
	if inv.CustomerAddress != "" {
		doc.Text(14, y, inv.CustomerAddress)
		y += 5
	}
	if inv.CustomerPhone != "" {
		doc.Text(14, y, "Ph: "+inv.CustomerPhone)
		y += 5
	}

	// Item table.
	doc.SetY(y + 10)
	colWidths := []float64{82, 30, 35, 35}
	headers := []string{labels.Item, labels.Quantity, labels.Price, labels.Total}
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(79, 70, 229)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(colWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(40, 40, 40)
	for _, it := range inv.Items {
		qty := fmt.Sprintf("%g", it.Quantity)
		if it.Unit != "" {
			qty += " " + it.Unit
		}
		doc.CellFormat(colWidths[0], 7, it.ProductName, "1", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[1], 7, qty, "1", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[2], 7, fmt.Sprintf("Rs. %.2f", it.Price), "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[3], 7, fmt.Sprintf("Rs. %.2f", it.Total), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	// Totals block, right aligned under the table.
	finalY := doc.GetY()
	doc.SetTextColor(0, 0, 0)
	doc.Text(130, finalY+10, fmt.Sprintf("%s: Rs. %.2f", labels.Subtotal, inv.Subtotal))
	doc.Text(130, finalY+15, fmt.Sprintf("%s: Rs. %.2f", labels.Tax, inv.TaxAmount))
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(79, 70, 229)
	doc.Text(130, finalY+25, fmt.Sprintf("%s: Rs. %.2f", labels.GrandTotal, inv.Total))

	doc.SetFont("Helvetica", "I", 8)
	doc.SetTextColor(150, 150, 150)
	doc.Text(14, finalY+35, "Thank you for your business!")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render %s: %w", inv.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the invoice into dir and returns the artifact path.
func WriteFile(dir string, inv models.Invoice, labels Labels, shopName string) (string, error) {
	data, err := Render(inv, labels, shopName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(inv))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", path, err)
	}
	return path, nil
}
