package publichandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain/directory"
	"backoffice/internal/domain/submission"
	"backoffice/internal/transport/http/api"
	"backoffice/internal/transport/http/middleware"
	"backoffice/internal/transport/http/shared"
)

type Handler struct {
	Submissions *submission.Service
	Directory   *directory.Store
}

func NewHandler(submissions *submission.Service, dir *directory.Store) *Handler {
	return &Handler{Submissions: submissions, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/public", func(r chi.Router) {
		r.Get("/captcha", h.handleNewCaptcha)
		r.Get("/jobs", h.handleListOpenJobs)
		r.Post("/contact", h.handleSubmitContact)
		r.Post("/applications", h.handleSubmitApplication)
	})
}

func (h *Handler) handleNewCaptcha(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Submissions.Captcha().Generate(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Directory.ListJobs(r.Context(), true)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "jobs_failed", "failed to list jobs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, jobs, middleware.GetRequestID(r.Context()))
}

type contactPayload struct {
	submission.Gate
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	v.Required("message", payload.Message, "message is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Submissions.SubmitContact(r.Context(), middleware.ClientIP(r), payload.Gate, submission.Contact{
		Name:    strings.TrimSpace(payload.Name),
		Email:   strings.TrimSpace(strings.ToLower(payload.Email)),
		Phone:   strings.TrimSpace(payload.Phone),
		Subject: strings.TrimSpace(payload.Subject),
		Message: payload.Message,
	})
	if err != nil {
		h.failSubmission(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

type applicationPayload struct {
	submission.Gate
	JobID       string `json:"jobId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var payload applicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("jobId", payload.JobID, "a job must be selected")
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Submissions.SubmitApplication(r.Context(), middleware.ClientIP(r), payload.Gate, submission.Application{
		JobID:       payload.JobID,
		Name:        strings.TrimSpace(payload.Name),
		Email:       strings.TrimSpace(strings.ToLower(payload.Email)),
		Phone:       strings.TrimSpace(payload.Phone),
		ResumeURL:   strings.TrimSpace(payload.ResumeURL),
		CoverLetter: payload.CoverLetter,
	})
	if err != nil {
		h.failSubmission(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failSubmission(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var limited *submission.RateLimitedError
	switch {
	case errors.Is(err, submission.ErrNotVerified):
		api.Fail(w, http.StatusBadRequest, "captcha_failed", "please answer the verification question correctly", requestID)
	case errors.As(err, &limited):
		w.Header().Set("Retry-After", fmt.Sprintf("%d", limited.RetryMinutes*60))
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", limited.Error(), requestID)
	case errors.Is(err, submission.ErrJobNotFound):
		api.Fail(w, http.StatusNotFound, "job_not_found", "job posting not found or no longer open", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "submission_failed", err.Error(), requestID)
	}
}
