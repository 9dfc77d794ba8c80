package submission

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backoffice/internal/captcha"
	"backoffice/internal/ratelimit"
)

type fakeStore struct {
	contacts     []Contact
	applications []Application
	jobs         map[string]bool
	insertErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{jobs: map[string]bool{}}
}

func (f *fakeStore) InsertContact(_ context.Context, c Contact) (Contact, error) {
	if f.insertErr != nil {
		return Contact{}, f.insertErr
	}
	c.ID = fmt.Sprintf("contact-%d", len(f.contacts)+1)
	c.CreatedAt = time.Now()
	f.contacts = append(f.contacts, c)
	return c, nil
}

func (f *fakeStore) InsertApplication(_ context.Context, a Application) (Application, error) {
	if f.insertErr != nil {
		return Application{}, f.insertErr
	}
	a.ID = fmt.Sprintf("app-%d", len(f.applications)+1)
	a.CreatedAt = time.Now()
	f.applications = append(f.applications, a)
	return a, nil
}

func (f *fakeStore) JobExists(_ context.Context, jobID string) (bool, error) {
	return f.jobs[jobID], nil
}

type recordingMailer struct {
	sent []string
	fail error
}

func (m *recordingMailer) Send(_ context.Context, _, _, subject, _ string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, subject)
	return nil
}

func newTestService(store *fakeStore, mailer Mailer) (*Service, *captcha.Service) {
	gate := captcha.New(10 * time.Minute)
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 3, time.Hour)
	return NewService(store, gate, limiter, mailer, "no-reply@example.com", "staff@example.com"), gate
}

// passingGate generates a fresh challenge and solves it by reading the
// operands out of the question text, the same way a human form filler would.
func passingGate(t *testing.T, gate *captcha.Service) Gate {
	t.Helper()
	ch := gate.Generate()
	var a, b int
	if _, err := fmt.Sscanf(ch.Question, "What is %d + %d?", &a, &b); err != nil {
		t.Fatalf("unexpected question format %q: %v", ch.Question, err)
	}
	return Gate{CaptchaID: ch.ID, CaptchaAnswer: a + b}
}

func TestSubmitContactRecordsAndNotifies(t *testing.T) {
	store := newFakeStore()
	mailer := &recordingMailer{}
	svc, gate := newTestService(store, mailer)

	created, err := svc.SubmitContact(context.Background(), "203.0.113.5", passingGate(t, gate), Contact{
		Name: "Ada", Email: "ada@example.com", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected persisted contact ID")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(mailer.sent))
	}
}

func TestSubmitContactRequiresVerification(t *testing.T) {
	store := newFakeStore()
	svc, gate := newTestService(store, &recordingMailer{})

	ch := gate.Generate()
	_, err := svc.SubmitContact(context.Background(), "203.0.113.5", Gate{CaptchaID: ch.ID, CaptchaAnswer: 999}, Contact{
		Name: "Ada", Email: "ada@example.com", Message: "Hello",
	})
	if !errors.Is(err, ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got %v", err)
	}
	if len(store.contacts) != 0 {
		t.Fatal("unverified submission must not persist")
	}
}

func TestSubmitContactRateLimited(t *testing.T) {
	store := newFakeStore()
	svc, gate := newTestService(store, &recordingMailer{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitContact(ctx, "198.51.100.3", passingGate(t, gate), Contact{
			Name: "Ada", Email: "ada@example.com", Message: "Hello",
		}); err != nil {
			t.Fatalf("submission %d failed: %v", i+1, err)
		}
	}

	_, err := svc.SubmitContact(ctx, "198.51.100.3", passingGate(t, gate), Contact{
		Name: "Ada", Email: "ada@example.com", Message: "Hello again",
	})
	var limited *RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if limited.RetryMinutes < 1 {
		t.Fatalf("expected a positive retry wait, got %d", limited.RetryMinutes)
	}
	if len(store.contacts) != 3 {
		t.Fatalf("expected 3 persisted contacts, got %d", len(store.contacts))
	}
}

func TestFailedInsertDoesNotConsumeWindow(t *testing.T) {
	store := newFakeStore()
	svc, gate := newTestService(store, &recordingMailer{})
	ctx := context.Background()

	store.insertErr = errors.New("db down")
	for i := 0; i < 5; i++ {
		if _, err := svc.SubmitContact(ctx, "192.0.2.8", passingGate(t, gate), Contact{
			Name: "Ada", Email: "ada@example.com", Message: "Hello",
		}); err == nil {
			t.Fatal("expected insert failure to surface")
		}
	}

	store.insertErr = nil
	if _, err := svc.SubmitContact(ctx, "192.0.2.8", passingGate(t, gate), Contact{
		Name: "Ada", Email: "ada@example.com", Message: "Hello",
	}); err != nil {
		t.Fatalf("failed attempts must not consume the window: %v", err)
	}
}

func TestSubmitApplicationRequiresOpenJob(t *testing.T) {
	store := newFakeStore()
	svc, gate := newTestService(store, &recordingMailer{})

	_, err := svc.SubmitApplication(context.Background(), "203.0.113.9", passingGate(t, gate), Application{
		JobID: "no-such-job", Name: "Ada", Email: "ada@example.com",
	})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestSubmitApplicationSetsStatus(t *testing.T) {
	store := newFakeStore()
	store.jobs["job-1"] = true
	svc, gate := newTestService(store, &recordingMailer{})

	created, err := svc.SubmitApplication(context.Background(), "203.0.113.9", passingGate(t, gate), Application{
		JobID: "job-1", Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if created.Status != ApplicationStatusNew {
		t.Fatalf("expected status %q, got %q", ApplicationStatusNew, created.Status)
	}
}

func TestMailFailureDoesNotBlockSubmission(t *testing.T) {
	store := newFakeStore()
	mailer := &recordingMailer{fail: errors.New("smtp down")}
	svc, gate := newTestService(store, mailer)

	if _, err := svc.SubmitContact(context.Background(), "203.0.113.5", passingGate(t, gate), Contact{
		Name: "Ada", Email: "ada@example.com", Message: "Hello",
	}); err != nil {
		t.Fatalf("mail failure must not block the submission: %v", err)
	}
	if len(store.contacts) != 1 {
		t.Fatal("expected contact to persist despite mail failure")
	}
}
