package payslip

import "context"

type StoreAPI interface {
	EmployeeInfo(ctx context.Context, employeeID string) (EmployeeInfo, error)
	// FindForPeriod returns nil with no error when no payslip exists for the
	// (employee, month, year) triple.
	FindForPeriod(ctx context.Context, employeeID string, month, year int) (*Record, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	UpdateFilePath(ctx context.Context, payslipID, filePath string) error
	Get(ctx context.Context, payslipID string) (Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, int, error)
}

type Renderer interface {
	Render(emp EmployeeInfo, rec Record) (string, error)
}
