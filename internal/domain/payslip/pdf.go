package payslip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer writes payslip documents under Dir using the
// {firstName}_{lastName}_{month}_{year}_payslip.pdf convention.
type PDFRenderer struct {
	Dir string
}

func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{Dir: dir}
}

func (r *PDFRenderer) Render(emp EmployeeInfo, rec Record) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(r.Dir, PayslipFilename(emp, rec))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", emp.FirstName, emp.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", time.Month(rec.Month), rec.Year))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Working days: %d   Paid days: %d", rec.WorkingDays, rec.PaidDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	writeAmountRow(pdf, "Basic Salary", rec.BasicSalary)
	writeAmountRow(pdf, "House Rent Allowance", rec.HRA)
	writeAmountRow(pdf, "Conveyance Allowance", rec.ConveyanceAllowance)
	writeAmountRow(pdf, "Medical Allowance", rec.MedicalAllowance)
	writeAmountRow(pdf, "Special Allowance", rec.SpecialAllowance)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	writeAmountRow(pdf, "Provident Fund", rec.ProvidentFund)
	writeAmountRow(pdf, "Professional Tax", rec.ProfessionalTax)
	writeAmountRow(pdf, "Income Tax", rec.IncomeTax)
	writeAmountRow(pdf, "Other Deductions", rec.OtherDeductions)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	writeAmountRow(pdf, "Gross Salary", rec.GrossSalary)
	writeAmountRow(pdf, "Total Deductions", rec.TotalDeductions)
	writeAmountRow(pdf, "Net Salary", rec.NetSalary)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

func writeAmountRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.Cell(120, 7, label)
	pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", amount), "", 0, "R", false, 0, "")
	pdf.Ln(7)
}

func PayslipFilename(emp EmployeeInfo, rec Record) string {
	name := fmt.Sprintf("%s_%s", sanitizeName(emp.FirstName), sanitizeName(emp.LastName))
	return fmt.Sprintf("%s_%d_%d_payslip.pdf", name, rec.Month, rec.Year)
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "employee"
	}
	return b.String()
}
