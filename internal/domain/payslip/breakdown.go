package payslip

import "math"

// Allocation policy applied to a monthly salary. The special allowance is
// computed as the remainder so the earning components always sum exactly to
// the input figure regardless of rounding.
const (
	BasicRate      = 0.50
	HRARate        = 0.20
	ConveyanceRate = 0.10
	MedicalRate    = 0.10

	DefaultProvidentFund   = 1800
	DefaultProfessionalTax = 200
	DefaultIncomeTax       = 0
)

// CalculateBreakdown splits a monthly salary into the canonical earning
// components and seeds the default deductions. It is deterministic: the same
// input always yields the same breakdown.
func CalculateBreakdown(monthlySalary float64) (Breakdown, error) {
	if math.IsNaN(monthlySalary) || math.IsInf(monthlySalary, 0) || monthlySalary < 0 {
		return Breakdown{}, ErrInvalidSalary
	}

	b := Breakdown{
		BasicSalary:         roundAmount(monthlySalary * BasicRate),
		HRA:                 roundAmount(monthlySalary * HRARate),
		ConveyanceAllowance: roundAmount(monthlySalary * ConveyanceRate),
		MedicalAllowance:    roundAmount(monthlySalary * MedicalRate),
	}
	b.SpecialAllowance = roundAmount(monthlySalary - b.BasicSalary - b.HRA - b.ConveyanceAllowance - b.MedicalAllowance)
	if b.SpecialAllowance < 0 {
		// On sub-unit salaries the rounded components can overshoot the
		// input. Fold the deficit into basic so every component stays
		// non-negative and the components still sum to the gross.
		b.BasicSalary = roundAmount(b.BasicSalary + b.SpecialAllowance)
		b.SpecialAllowance = 0
	}

	if monthlySalary > 0 {
		b.ProvidentFund = DefaultProvidentFund
		b.ProfessionalTax = DefaultProfessionalTax
		b.IncomeTax = DefaultIncomeTax
	}

	b.GrossSalary = roundAmount(b.BasicSalary + b.HRA + b.ConveyanceAllowance + b.MedicalAllowance + b.SpecialAllowance)
	b.TotalDeductions = roundAmount(b.ProvidentFund + b.ProfessionalTax + b.IncomeTax)
	b.NetSalary = roundAmount(b.GrossSalary - b.TotalDeductions)
	return b, nil
}

// roundAmount keeps monetary values at two decimal places.
func roundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
