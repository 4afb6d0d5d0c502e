package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Line is one billed row of an invoice document
type Line struct {
	Description string
	Quantity    int
	Price       float64
	Total       float64
}

// Document is the printable projection of an invoice
type Document struct {
	Number          string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []Line
	Subtotal        float64
	TaxPercent      float64
	DiscountPercent float64
	GrandTotal      float64
	PaidAmount      float64
	Status          string
	DueDate         time.Time
	IssuedAt        time.Time
}

// Renderer lays out invoice documents as A4 PDFs
type Renderer struct {
	shopName    string
	shopTagline string
}

// NewRenderer creates an invoice PDF renderer with the shop letterhead
func NewRenderer(shopName, shopTagline string) *Renderer {
	return &Renderer{shopName: shopName, shopTagline: shopTagline}
}

// Render produces the PDF bytes for one invoice
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetAutoPageBreak(true, 20)
	p.AddPage()

	// Letterhead
	p.SetFont("Helvetica", "B", 18)
	p.CellFormat(0, 9, r.shopName, "", 1, "L", false, 0, "")
	if r.shopTagline != "" {
		p.SetFont("Helvetica", "", 10)
		p.SetTextColor(100, 100, 100)
		p.CellFormat(0, 5, r.shopTagline, "", 1, "L", false, 0, "")
		p.SetTextColor(0, 0, 0)
	}
	p.Ln(4)

	p.SetFont("Helvetica", "B", 13)
	p.CellFormat(0, 7, fmt.Sprintf("Invoice %s", doc.Number), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 5, fmt.Sprintf("Issued: %s    Due: %s",
		doc.IssuedAt.Format("02 Jan 2006"), doc.DueDate.Format("02 Jan 2006")), "", 1, "L", false, 0, "")
	p.CellFormat(0, 5, fmt.Sprintf("Status: %s", doc.Status), "", 1, "L", false, 0, "")
	p.Ln(3)

	// Customer block
	p.SetFont("Helvetica", "B", 10)
	p.CellFormat(0, 5, "Billed To", "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 5, doc.CustomerName, "", 1, "L", false, 0, "")
	p.CellFormat(0, 5, doc.CustomerPhone, "", 1, "L", false, 0, "")
	if doc.CustomerAddress != "" {
		p.MultiCell(0, 5, doc.CustomerAddress, "", "L", false)
	}
	p.Ln(4)

	// Items table
	colW := []float64{95.0, 20.0, 35.0, 40.0}
	p.SetFont("Helvetica", "B", 10)
	p.SetFillColor(235, 235, 235)
	p.CellFormat(colW[0], 7, "Description", "1", 0, "L", true, 0, "")
	p.CellFormat(colW[1], 7, "Qty", "1", 0, "C", true, 0, "")
	p.CellFormat(colW[2], 7, "Price", "1", 0, "R", true, 0, "")
	p.CellFormat(colW[3], 7, "Total", "1", 1, "R", true, 0, "")

	p.SetFont("Helvetica", "", 10)
	for _, line := range doc.Items {
		p.CellFormat(colW[0], 7, line.Description, "1", 0, "L", false, 0, "")
		p.CellFormat(colW[1], 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		p.CellFormat(colW[2], 7, amount(line.Price), "1", 0, "R", false, 0, "")
		p.CellFormat(colW[3], 7, amount(line.Total), "1", 1, "R", false, 0, "")
	}
	p.Ln(3)

	// Totals block, right aligned under the table
	labelW, valueW := colW[0]+colW[1]+colW[2], colW[3]
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		p.SetFont("Helvetica", style, 10)
		p.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
		p.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", amount(doc.Subtotal), false)
	if doc.TaxPercent > 0 {
		totalRow(fmt.Sprintf("Tax (%.0f%%)", doc.TaxPercent), amount(doc.Subtotal*doc.TaxPercent/100), false)
	}
	if doc.DiscountPercent > 0 {
		totalRow(fmt.Sprintf("Discount (%.0f%%)", doc.DiscountPercent), "-"+amount(doc.Subtotal*doc.DiscountPercent/100), false)
	}
	totalRow("Grand Total", amount(doc.GrandTotal), true)
	totalRow("Paid", amount(doc.PaidAmount), false)
	totalRow("Balance Due", amount(doc.GrandTotal-doc.PaidAmount), true)

	p.Ln(8)
	p.SetFont("Helvetica", "I", 9)
	p.SetTextColor(100, 100, 100)
	p.CellFormat(0, 5, "Thank you for your business.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func amount(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
