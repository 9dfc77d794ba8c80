package submission

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertContact(ctx context.Context, c Contact) (Contact, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO contact_submissions (name, email, phone, subject, message)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, created_at
  `, c.Name, c.Email, c.Phone, c.Subject, c.Message).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *Store) InsertApplication(ctx context.Context, a Application) (Application, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_applications (job_id, name, email, phone, resume_url, cover_letter, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, created_at
  `, a.JobID, a.Name, a.Email, a.Phone, a.ResumeURL, a.CoverLetter, a.Status).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *Store) JobExists(ctx context.Context, jobID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM jobs WHERE id = $1 AND status = 'open'
  `, jobID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
