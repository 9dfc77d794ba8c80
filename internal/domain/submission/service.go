package submission

import (
	"context"
	"fmt"
	"log/slog"

	"backoffice/internal/captcha"
	"backoffice/internal/ratelimit"
)

const ApplicationStatusNew = "new"

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type StoreAPI interface {
	InsertContact(ctx context.Context, c Contact) (Contact, error)
	InsertApplication(ctx context.Context, a Application) (Application, error)
	JobExists(ctx context.Context, jobID string) (bool, error)
}

// Service gates public form submissions: CAPTCHA first, then rate-limit
// admission, then the insert. The window is only recorded once the insert
// succeeded, so a failed submission does not consume an attempt.
type Service struct {
	store    StoreAPI
	captcha  *captcha.Service
	limiter  *ratelimit.Limiter
	mailer   Mailer
	from     string
	notifyTo string
}

func NewService(store StoreAPI, gate *captcha.Service, limiter *ratelimit.Limiter, mailer Mailer, from, notifyTo string) *Service {
	return &Service{store: store, captcha: gate, limiter: limiter, mailer: mailer, from: from, notifyTo: notifyTo}
}

func (s *Service) Captcha() *captcha.Service {
	return s.captcha
}

// SubmitContact admits and persists a contact-form submission. clientKey
// identifies the submitter for rate limiting (client IP in practice).
func (s *Service) SubmitContact(ctx context.Context, clientKey string, gate Gate, c Contact) (Contact, error) {
	if err := s.admit("contact:"+clientKey, gate); err != nil {
		return Contact{}, err
	}

	created, err := s.store.InsertContact(ctx, c)
	if err != nil {
		return Contact{}, err
	}
	s.limiter.Record("contact:" + clientKey)

	s.notify(ctx, "New contact submission",
		fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s", created.Name, created.Email, created.Subject, created.Message))
	return created, nil
}

// SubmitApplication admits and persists a job application.
func (s *Service) SubmitApplication(ctx context.Context, clientKey string, gate Gate, a Application) (Application, error) {
	if err := s.admit("apply:"+clientKey, gate); err != nil {
		return Application{}, err
	}

	exists, err := s.store.JobExists(ctx, a.JobID)
	if err != nil {
		return Application{}, err
	}
	if !exists {
		return Application{}, ErrJobNotFound
	}

	a.Status = ApplicationStatusNew
	created, err := s.store.InsertApplication(ctx, a)
	if err != nil {
		return Application{}, err
	}
	s.limiter.Record("apply:" + clientKey)

	s.notify(ctx, "New job application",
		fmt.Sprintf("Applicant: %s <%s>\nJob: %s", created.Name, created.Email, created.JobID))
	return created, nil
}

// admit enforces the submission gate: an unverified challenge is a hard
// precondition failure and is checked before the rate limiter so a bot
// cannot probe the window without solving the challenge.
func (s *Service) admit(key string, gate Gate) error {
	if gate.CaptchaID == "" || !s.captcha.Verify(gate.CaptchaID, gate.CaptchaAnswer) {
		return ErrNotVerified
	}

	decision := s.limiter.Check(key)
	if !decision.Allowed {
		return &RateLimitedError{RetryMinutes: decision.RemainingMinutes}
	}
	return nil
}

// notify is best effort: a mail failure never blocks a submission.
func (s *Service) notify(ctx context.Context, subject, body string) {
	if s.mailer == nil || s.notifyTo == "" {
		return
	}
	if err := s.mailer.Send(ctx, s.from, s.notifyTo, subject, body); err != nil {
		slog.Warn("submission notification failed", "subject", subject, "err", err)
	}
}
