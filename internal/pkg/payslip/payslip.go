// Package payslip renders payroll records as PDF payslips.
package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Line is one labelled amount, already formatted.
type Line struct {
	Label  string
	Amount string
}

type Slip struct {
	CompanyName     string
	EmployeeID      string
	EmployeeName    string
	Designation     string
	Department      string
	PeriodStart     string
	PeriodEnd       string
	DaysWorked      int
	Status          string
	Earnings        []Line
	Deductions      []Line
	TotalIncome     string
	TotalDeductions string
	NetPay          string
}

// FileName is the attachment name used for downloads.
func (s Slip) FileName() string {
	return fmt.Sprintf("payslip_%s_%s.pdf", s.EmployeeID, s.PeriodStart)
}

const (
	pageWidth = 190.0
	colWidth  = pageWidth / 2
	rowHeight = 7.0
)

// Render draws the slip on a single A4 page.
func Render(s Slip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+s.EmployeeID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, s.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(pageWidth, 8, fmt.Sprintf("Payslip for %s to %s", s.PeriodStart, s.PeriodEnd), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	details := [][2]string{
		{"Employee ID", s.EmployeeID},
		{"Employee Name", s.EmployeeName},
		{"Designation", s.Designation},
		{"Department", s.Department},
		{"Days Worked", fmt.Sprintf("%d", s.DaysWorked)},
		{"Status", s.Status},
	}
	for _, d := range details {
		pdf.CellFormat(45, rowHeight, d[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth-45, rowHeight, d[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colWidth, rowHeight+1, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidth, rowHeight+1, "Deductions", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := len(s.Earnings)
	if len(s.Deductions) > rows {
		rows = len(s.Deductions)
	}
	for i := 0; i < rows; i++ {
		drawLine(pdf, s.Earnings, i, 0)
		drawLine(pdf, s.Deductions, i, 1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	drawLine(pdf, []Line{{"Total Income", s.TotalIncome}}, 0, 0)
	drawLine(pdf, []Line{{"Total Deductions", s.TotalDeductions}}, 0, 1)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(colWidth, rowHeight+2, "Net Pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, rowHeight+2, s.NetPay, "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(pageWidth, 5, "This is a system generated payslip and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLine writes one half of a table row; ln is 1 for the right column.
func drawLine(pdf *gofpdf.Fpdf, lines []Line, i int, ln int) {
	label, amount := "", ""
	if i < len(lines) {
		label, amount = lines[i].Label, lines[i].Amount
	}
	pdf.CellFormat(colWidth*0.6, rowHeight, label, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth*0.4, rowHeight, amount, "RB", ln, "R", false, 0, "")
}
