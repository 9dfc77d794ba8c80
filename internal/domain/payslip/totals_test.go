package payslip

import (
	"math"
	"testing"
)

func TestComputeTotals(t *testing.T) {
	draft := Draft{
		BasicSalary:         15000,
		HRA:                 6000,
		ConveyanceAllowance: 3000,
		MedicalAllowance:    3000,
		SpecialAllowance:    3000,
		ProvidentFund:       1800,
		ProfessionalTax:     200,
	}

	totals := ComputeTotals(draft)
	if totals.GrossSalary != 30000 {
		t.Fatalf("expected gross 30000, got %v", totals.GrossSalary)
	}
	if totals.TotalDeductions != 2000 {
		t.Fatalf("expected deductions 2000, got %v", totals.TotalDeductions)
	}
	if totals.NetSalary != 28000 {
		t.Fatalf("expected net 28000, got %v", totals.NetSalary)
	}
}

func TestComputeTotalsUnsetFieldsAreZero(t *testing.T) {
	totals := ComputeTotals(Draft{BasicSalary: 5000})
	if totals.GrossSalary != 5000 {
		t.Fatalf("expected gross 5000, got %v", totals.GrossSalary)
	}
	if totals.TotalDeductions != 0 {
		t.Fatalf("expected deductions 0, got %v", totals.TotalDeductions)
	}
	if totals.NetSalary != 5000 {
		t.Fatalf("expected net 5000, got %v", totals.NetSalary)
	}
}

func TestComputeTotalsNeverProducesNaN(t *testing.T) {
	draft := Draft{
		BasicSalary:      10000,
		HRA:              math.NaN(),
		SpecialAllowance: math.Inf(1),
		ProvidentFund:    math.NaN(),
	}

	totals := ComputeTotals(draft)
	for label, v := range map[string]float64{
		"gross":      totals.GrossSalary,
		"deductions": totals.TotalDeductions,
		"net":        totals.NetSalary,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("expected finite %s, got %v", label, v)
		}
	}
	if totals.GrossSalary != 10000 {
		t.Fatalf("expected bad fields to count as zero, got gross %v", totals.GrossSalary)
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	draft := Draft{BasicSalary: 12000, HRA: 4800, ProvidentFund: 1800}
	first := ComputeTotals(draft)
	second := ComputeTotals(draft)
	if first != second {
		t.Fatalf("totals not idempotent: %+v vs %+v", first, second)
	}
}
