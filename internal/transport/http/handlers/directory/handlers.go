package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain/directory"
	"backoffice/internal/transport/http/api"
	"backoffice/internal/transport/http/middleware"
	"backoffice/internal/transport/http/shared"
)

type Handler struct {
	Store *directory.Store
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.Put("/{employeeID}", h.handleUpdateEmployee)
		r.Delete("/{employeeID}", h.handleDeleteEmployee)
	})
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.handleListJobs)
		r.Post("/", h.handleCreateJob)
		r.Put("/{jobID}", h.handleUpdateJob)
		r.Delete("/{jobID}", h.handleDeleteJob)
	})
	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.handleListApplications)
		r.Patch("/{applicationID}/status", h.handleUpdateApplicationStatus)
	})
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.handleListContacts)
		r.Delete("/{contactID}", h.handleDeleteContact)
	})
}

type employeePayload struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Designation   string  `json:"designation"`
	MonthlySalary float64 `json:"monthlySalary"`
	Status        string  `json:"status"`
	JoinedOn      string  `json:"joinedOn"`
}

func (p employeePayload) validate(v *shared.Validator) (directory.Employee, bool) {
	v.Required("firstName", p.FirstName, "first name is required")
	v.Required("lastName", p.LastName, "last name is required")
	v.Required("email", p.Email, "email is required")
	v.Email("email", p.Email)
	v.NonNegative("monthlySalary", p.MonthlySalary)

	status := p.Status
	if status == "" {
		status = directory.EmployeeStatusActive
	}
	if status != directory.EmployeeStatusActive && status != directory.EmployeeStatusInactive {
		v.Add("status", "must be active or inactive")
	}

	joined := time.Now().UTC()
	if p.JoinedOn != "" {
		parsed, err := time.Parse("2006-01-02", p.JoinedOn)
		if err != nil {
			v.Add("joinedOn", "must be a valid date in YYYY-MM-DD format")
		} else {
			joined = parsed
		}
	}

	if v.HasIssues() {
		return directory.Employee{}, false
	}
	return directory.Employee{
		FirstName:     strings.TrimSpace(p.FirstName),
		LastName:      strings.TrimSpace(p.LastName),
		Email:         strings.TrimSpace(strings.ToLower(p.Email)),
		Phone:         strings.TrimSpace(p.Phone),
		Designation:   strings.TrimSpace(p.Designation),
		MonthlySalary: p.MonthlySalary,
		Status:        status,
		JoinedOn:      joined,
	}, true
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	limit, offset := shared.Pagination(r)
	employees, total, err := h.Store.ListEmployees(r.Context(), limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": employees, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	employee, ok := payload.validate(v)
	if !ok {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), v.Issues())
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), employee)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	employee, ok := payload.validate(v)
	if !ok {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), v.Issues())
		return
	}

	err := h.Store.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), employee)
	if errors.Is(err, directory.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type jobPayload struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (p jobPayload) validate(v *shared.Validator) (directory.Job, bool) {
	v.Required("title", p.Title, "title is required")

	status := p.Status
	if status == "" {
		status = directory.JobStatusOpen
	}
	if status != directory.JobStatusOpen && status != directory.JobStatusClosed {
		v.Add("status", "must be open or closed")
	}

	if v.HasIssues() {
		return directory.Job{}, false
	}
	return directory.Job{
		Title:       strings.TrimSpace(p.Title),
		Location:    strings.TrimSpace(p.Location),
		Description: p.Description,
		Status:      status,
	}, true
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Store.ListJobs(r.Context(), false)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "jobs_failed", "failed to list jobs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, jobs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	job, ok := payload.validate(v)
	if !ok {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), v.Issues())
		return
	}

	id, err := h.Store.CreateJob(r.Context(), job)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_create_failed", "failed to create job", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	job, ok := payload.validate(v)
	if !ok {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), v.Issues())
		return
	}

	err := h.Store.UpdateJob(r.Context(), chi.URLParam(r, "jobID"), job)
	if errors.Is(err, directory.ErrJobNotFound) {
		api.Fail(w, http.StatusNotFound, "job_not_found", "job not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_update_failed", "failed to update job", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteJob(r.Context(), chi.URLParam(r, "jobID"))
	if errors.Is(err, directory.ErrJobNotFound) {
		api.Fail(w, http.StatusNotFound, "job_not_found", "job not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "job_delete_failed", "failed to delete job", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	limit, offset := shared.Pagination(r)
	applications, total, err := h.Store.ListApplications(r.Context(), limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "applications_failed", "failed to list applications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": applications, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	switch payload.Status {
	case directory.ApplicationStatusNew, directory.ApplicationStatusReviewed,
		directory.ApplicationStatusRejected, directory.ApplicationStatusHired:
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_status", "unknown application status", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Store.UpdateApplicationStatus(r.Context(), chi.URLParam(r, "applicationID"), payload.Status)
	if errors.Is(err, directory.ErrApplicationNotFound) {
		api.Fail(w, http.StatusNotFound, "application_not_found", "application not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "application_update_failed", "failed to update application", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := shared.Pagination(r)
	contacts, total, err := h.Store.ListContacts(r.Context(), limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contacts_failed", "failed to list contact submissions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": contacts, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteContact(r.Context(), chi.URLParam(r, "contactID"))
	if errors.Is(err, directory.ErrContactNotFound) {
		api.Fail(w, http.StatusNotFound, "contact_not_found", "contact submission not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "contact_delete_failed", "failed to delete contact submission", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
