package payslip

import "time"

// Breakdown is the canonical allocation of a monthly salary into earning and
// deduction components. Gross, TotalDeductions and Net are always derived
// from the other fields, never set independently.
type Breakdown struct {
	BasicSalary         float64 `json:"basicSalary"`
	HRA                 float64 `json:"hra"`
	ConveyanceAllowance float64 `json:"conveyanceAllowance"`
	MedicalAllowance    float64 `json:"medicalAllowance"`
	SpecialAllowance    float64 `json:"specialAllowance"`
	ProvidentFund       float64 `json:"providentFund"`
	ProfessionalTax     float64 `json:"professionalTax"`
	IncomeTax           float64 `json:"incomeTax"`
	GrossSalary         float64 `json:"grossSalary"`
	TotalDeductions     float64 `json:"totalDeductions"`
	NetSalary           float64 `json:"netSalary"`
}

// Draft is the working state of a payslip before submission. Amount fields
// decode as zero when absent from the payload.
type Draft struct {
	EmployeeID          string  `json:"employeeId"`
	Month               int     `json:"month"`
	Year                int     `json:"year"`
	WorkingDays         int     `json:"workingDays"`
	PaidDays            int     `json:"paidDays"`
	CTC                 float64 `json:"ctc"`
	BasicSalary         float64 `json:"basicSalary"`
	HRA                 float64 `json:"hra"`
	ConveyanceAllowance float64 `json:"conveyanceAllowance"`
	MedicalAllowance    float64 `json:"medicalAllowance"`
	SpecialAllowance    float64 `json:"specialAllowance"`
	ProvidentFund       float64 `json:"providentFund"`
	ProfessionalTax     float64 `json:"professionalTax"`
	IncomeTax           float64 `json:"incomeTax"`
	OtherDeductions     float64 `json:"otherDeductions"`
}

// Totals are derived figures; they are snapshotted onto the persisted record
// at submission time and never recomputed afterwards.
type Totals struct {
	GrossSalary     float64 `json:"grossSalary"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
}

type Record struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employeeId"`
	Month               int       `json:"month"`
	Year                int       `json:"year"`
	WorkingDays         int       `json:"workingDays"`
	PaidDays            int       `json:"paidDays"`
	CTC                 float64   `json:"ctc"`
	BasicSalary         float64   `json:"basicSalary"`
	HRA                 float64   `json:"hra"`
	ConveyanceAllowance float64   `json:"conveyanceAllowance"`
	MedicalAllowance    float64   `json:"medicalAllowance"`
	SpecialAllowance    float64   `json:"specialAllowance"`
	ProvidentFund       float64   `json:"providentFund"`
	ProfessionalTax     float64   `json:"professionalTax"`
	IncomeTax           float64   `json:"incomeTax"`
	OtherDeductions     float64   `json:"otherDeductions"`
	GrossSalary         float64   `json:"grossSalary"`
	TotalDeductions     float64   `json:"totalDeductions"`
	NetSalary           float64   `json:"netSalary"`
	FilePath            string    `json:"filePath,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type EmployeeInfo struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	MonthlySalary float64
}
