package gofpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"
)

// Generator renders quotations on an A4 page with 10mm margins. A fresh
// document is built per call, so instances are safe to share across requests.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(q quotation.Quotation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quotation "+q.QuotationNo, false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, "GM Motors")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(70, 10, "QUOTATION", "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(120, 6, fmt.Sprintf("Quotation No: %s", q.QuotationNo))
	pdf.CellFormat(70, 6, fmt.Sprintf("Date: %s", ordinalDate(q.Date.Time)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "To:")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, q.CustomerName)
	pdf.Ln(6)
	pdf.MultiCell(0, 6, q.CustomerAddress, "", "L", false)
	if q.BikeRegNo != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Vehicle Reg No: %s", q.BikeRegNo))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range q.Items {
		pdf.CellFormat(100, 7, trim(it.Description, 60), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, formatQty(it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, formatAmount(decimal.NewFromFloat(it.Rate)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, formatAmount(it.Amount()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, formatAmount(q.Total()), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, "Remarks")
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, q.Remarks, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%g", qty)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
