package payslip

import "math"

// ComputeTotals derives gross, total deductions and net from a draft. It is
// pure and idempotent, safe to call on every form edit. Non-finite amounts
// count as zero so a single bad field cannot poison the sums.
func ComputeTotals(d Draft) Totals {
	gross := amountOrZero(d.BasicSalary) +
		amountOrZero(d.HRA) +
		amountOrZero(d.ConveyanceAllowance) +
		amountOrZero(d.MedicalAllowance) +
		amountOrZero(d.SpecialAllowance)

	deductions := amountOrZero(d.ProvidentFund) +
		amountOrZero(d.ProfessionalTax) +
		amountOrZero(d.IncomeTax) +
		amountOrZero(d.OtherDeductions)

	return Totals{
		GrossSalary:     roundAmount(gross),
		TotalDeductions: roundAmount(deductions),
		NetSalary:       roundAmount(gross - deductions),
	}
}

func amountOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
