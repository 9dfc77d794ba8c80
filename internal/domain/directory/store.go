package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrContactNotFound     = errors.New("contact submission not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, email, COALESCE(phone, ''),
           COALESCE(designation, ''), monthly_salary, status, joined_on, created_at
    FROM employees
    ORDER BY last_name, first_name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
			&e.Designation, &e.MonthlySalary, &e.Status, &e.JoinedOn, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, COALESCE(phone, ''),
           COALESCE(designation, ''), monthly_salary, status, joined_on, created_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.Designation, &e.MonthlySalary, &e.Status, &e.JoinedOn, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, designation, monthly_salary, status, joined_on)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, e.FirstName, e.LastName, e.Email, e.Phone, e.Designation, e.MonthlySalary, e.Status, e.JoinedOn).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID string, e Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, phone = $5,
        designation = $6, monthly_salary = $7, status = $8, joined_on = $9
    WHERE id = $1
  `, employeeID, e.FirstName, e.LastName, e.Email, e.Phone, e.Designation, e.MonthlySalary, e.Status, e.JoinedOn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ListJobs(ctx context.Context, openOnly bool) ([]Job, error) {
	query := `
    SELECT id, title, COALESCE(location, ''), COALESCE(description, ''), status, created_at
    FROM jobs`
	if openOnly {
		query += `
    WHERE status = 'open'`
	}
	query += `
    ORDER BY created_at DESC`

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Location, &j.Description, &j.Status, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) CreateJob(ctx context.Context, j Job) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO jobs (title, location, description, status)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, j.Title, j.Location, j.Description, j.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateJob(ctx context.Context, jobID string, j Job) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE jobs
    SET title = $2, location = $3, description = $4, status = $5
    WHERE id = $1
  `, jobID, j.Title, j.Location, j.Description, j.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM jobs WHERE id = $1", jobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *Store) ListApplications(ctx context.Context, limit, offset int) ([]Application, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM job_applications").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.job_id, COALESCE(j.title, ''), a.name, a.email, COALESCE(a.phone, ''),
           COALESCE(a.resume_url, ''), COALESCE(a.cover_letter, ''), a.status, a.created_at
    FROM job_applications a
    LEFT JOIN jobs j ON a.job_id = j.id
    ORDER BY a.created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.Name, &a.Email, &a.Phone,
			&a.ResumeURL, &a.CoverLetter, &a.Status, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		applications = append(applications, a)
	}
	return applications, total, rows.Err()
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE job_applications SET status = $2 WHERE id = $1
  `, applicationID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (s *Store) ListContacts(ctx context.Context, limit, offset int) ([]Contact, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM contact_submissions").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, COALESCE(phone, ''), COALESCE(subject, ''), message, created_at
    FROM contact_submissions
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (s *Store) DeleteContact(ctx context.Context, contactID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM contact_submissions WHERE id = $1", contactID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}
