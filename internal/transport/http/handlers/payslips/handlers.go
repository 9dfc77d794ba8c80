package payslipshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain/payslip"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/transport/http/api"
	"backoffice/internal/transport/http/middleware"
	"backoffice/internal/transport/http/shared"
)

type Handler struct {
	Service *payslip.Service
	Metrics *metrics.Collector
}

func NewHandler(service *payslip.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleGenerate)
		r.Get("/breakdown", h.handleBreakdown)
		r.Get("/days-in-month", h.handleDaysInMonth)
		r.Get("/{payslipID}", h.handleGet)
		r.Get("/{payslipID}/download", h.handleDownload)
		r.Post("/{payslipID}/regenerate", h.handleRegenerate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, offset := shared.Pagination(r)
	records, total, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslips_failed", "failed to list payslips", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": records, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var draft payslip.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	rec, err := h.Service.Generate(r.Context(), draft)
	if err != nil {
		h.failGenerate(w, r, rec, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.PayslipIssued()
	}
	api.Created(w, rec, middleware.GetRequestID(r.Context()))
}

// handleBreakdown pre-fills the generator form from an employee's monthly
// salary.
func (h *Handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	salary, err := strconv.ParseFloat(r.URL.Query().Get("salary"), 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_salary", "salary must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	breakdown, err := payslip.CalculateBreakdown(salary)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_salary", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, breakdown, middleware.GetRequestID(r.Context()))
}

// handleDaysInMonth bounds the working/paid day fields when the period
// changes.
func (h *Handler) handleDaysInMonth(w http.ResponseWriter, r *http.Request) {
	year, yearErr := strconv.Atoi(r.URL.Query().Get("year"))
	month, monthErr := strconv.Atoi(r.URL.Query().Get("month"))
	if yearErr != nil || monthErr != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "year and month must be numbers", middleware.GetRequestID(r.Context()))
		return
	}

	days, err := payslip.DaysInMonth(year, month)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"days": days}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Get(r.Context(), chi.URLParam(r, "payslipID"))
	if errors.Is(err, payslip.ErrPayslipNotFound) {
		api.Fail(w, http.StatusNotFound, "payslip_not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load payslip", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Document(r.Context(), chi.URLParam(r, "payslipID"))
	if errors.Is(err, payslip.ErrPayslipNotFound) {
		api.Fail(w, http.StatusNotFound, "payslip_not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, payslip.ErrDocumentNotReady) {
		api.Fail(w, http.StatusConflict, "document_not_ready", "payslip document has not been generated, use regenerate", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(rec.FilePath)))
	http.ServeFile(w, r, rec.FilePath)
}

func (h *Handler) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Service.Regenerate(r.Context(), chi.URLParam(r, "payslipID"))
	if errors.Is(err, payslip.ErrPayslipNotFound) {
		api.Fail(w, http.StatusNotFound, "payslip_not_found", "payslip not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "regenerate_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failGenerate(w http.ResponseWriter, r *http.Request, rec payslip.Record, err error) {
	requestID := middleware.GetRequestID(r.Context())

	switch {
	case errors.Is(err, payslip.ErrDuplicatePayslip):
		api.Fail(w, http.StatusConflict, "duplicate_payslip", "payslip already exists for this employee and period", requestID)
	case errors.Is(err, payslip.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, payslip.ErrRenderFailed):
		// The record is saved; only the document is missing. Keep this
		// distinct from storage failures so operators can find orphaned
		// records, and point the client at regenerate.
		if h.Metrics != nil {
			h.Metrics.RenderFailure()
		}
		api.FailWithDetails(w, http.StatusInternalServerError, "render_failed",
			"payslip was saved but the document could not be generated, retry via regenerate",
			map[string]string{"payslipId": rec.ID}, requestID)
	case errors.Is(err, payslip.ErrEmployeeRequired),
		errors.Is(err, payslip.ErrInvalidMonth),
		errors.Is(err, payslip.ErrInvalidYear),
		errors.Is(err, payslip.ErrInvalidDays),
		errors.Is(err, payslip.ErrNegativeAmount),
		errors.Is(err, payslip.ErrNegativeNet),
		errors.Is(err, payslip.ErrBreakdownMissing):
		api.Fail(w, http.StatusBadRequest, "invalid_draft", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payslip_create_failed", err.Error(), requestID)
	}
}
