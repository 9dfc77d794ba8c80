package payslip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const recordColumns = `
    id, employee_id, month, year, working_days, paid_days, ctc,
    basic_salary, hra, conveyance_allowance, medical_allowance, special_allowance,
    provident_fund, professional_tax, income_tax, other_deductions,
    gross_salary, total_deductions, net_salary,
    COALESCE(file_path, ''), created_at`

func (s *Store) EmployeeInfo(ctx context.Context, employeeID string) (EmployeeInfo, error) {
	var info EmployeeInfo
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, monthly_salary
    FROM employees
    WHERE id = $1 AND status = 'active'
  `, employeeID).Scan(&info.ID, &info.FirstName, &info.LastName, &info.Email, &info.MonthlySalary)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeInfo{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeInfo{}, err
	}
	return info, nil
}

func (s *Store) FindForPeriod(ctx context.Context, employeeID string, month, year int) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`
    FROM payslips
    WHERE employee_id = $1 AND month = $2 AND year = $3
  `, employeeID, month, year)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payslips (
      employee_id, month, year, working_days, paid_days, ctc,
      basic_salary, hra, conveyance_allowance, medical_allowance, special_allowance,
      provident_fund, professional_tax, income_tax, other_deductions,
      gross_salary, total_deductions, net_salary
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    RETURNING id, created_at
  `, rec.EmployeeID, rec.Month, rec.Year, rec.WorkingDays, rec.PaidDays, rec.CTC,
		rec.BasicSalary, rec.HRA, rec.ConveyanceAllowance, rec.MedicalAllowance, rec.SpecialAllowance,
		rec.ProvidentFund, rec.ProfessionalTax, rec.IncomeTax, rec.OtherDeductions,
		rec.GrossSalary, rec.TotalDeductions, rec.NetSalary,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		// The unique index on (employee_id, month, year) is the backstop for
		// the non-atomic duplicate-check-then-insert sequence.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Record{}, ErrDuplicatePayslip
		}
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) UpdateFilePath(ctx context.Context, payslipID, filePath string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payslips SET file_path = $2 WHERE id = $1
  `, payslipID, filePath)
	return err
}

func (s *Store) Get(ctx context.Context, payslipID string) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`
    FROM payslips
    WHERE id = $1
  `, payslipID)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrPayslipNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Record, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payslips").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`
    FROM payslips
    ORDER BY year DESC, month DESC, created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.WorkingDays, &rec.PaidDays, &rec.CTC,
		&rec.BasicSalary, &rec.HRA, &rec.ConveyanceAllowance, &rec.MedicalAllowance, &rec.SpecialAllowance,
		&rec.ProvidentFund, &rec.ProfessionalTax, &rec.IncomeTax, &rec.OtherDeductions,
		&rec.GrossSalary, &rec.TotalDeductions, &rec.NetSalary,
		&rec.FilePath, &rec.CreatedAt,
	)
	return rec, err
}
