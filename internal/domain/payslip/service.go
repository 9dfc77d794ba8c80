package payslip

import (
	"context"
	"fmt"
	"log/slog"
)

// Service drives a payslip submission from draft to persisted record and
// rendered document.
type Service struct {
	store    StoreAPI
	renderer Renderer
}

func NewService(store StoreAPI, renderer Renderer) *Service {
	return &Service{store: store, renderer: renderer}
}

// Generate validates the draft, rejects duplicates for the period, persists
// the snapshot and renders the document. If rendering fails after the insert
// succeeded the record is kept and the error wraps ErrRenderFailed; the
// document can be produced later via Regenerate.
func (s *Service) Generate(ctx context.Context, draft Draft) (Record, error) {
	if err := s.validate(draft); err != nil {
		return Record{}, err
	}

	totals := ComputeTotals(draft)
	if totals.NetSalary < 0 {
		return Record{}, ErrNegativeNet
	}

	emp, err := s.store.EmployeeInfo(ctx, draft.EmployeeID)
	if err != nil {
		return Record{}, err
	}

	existing, err := s.store.FindForPeriod(ctx, draft.EmployeeID, draft.Month, draft.Year)
	if err != nil {
		return Record{}, err
	}
	if existing != nil {
		return Record{}, ErrDuplicatePayslip
	}

	rec, err := s.store.Insert(ctx, snapshot(draft, totals))
	if err != nil {
		return Record{}, err
	}

	filePath, err := s.renderer.Render(emp, rec)
	if err != nil {
		slog.Error("payslip document generation failed after insert",
			"payslipId", rec.ID,
			"employeeId", rec.EmployeeID,
			"err", err,
		)
		return rec, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	if err := s.store.UpdateFilePath(ctx, rec.ID, filePath); err != nil {
		// The file exists on disk and Regenerate can rewrite the path.
		slog.Warn("failed to save payslip file path", "payslipId", rec.ID, "err", err)
	}
	rec.FilePath = filePath
	return rec, nil
}

// Regenerate re-renders the document for an existing record using the
// snapshotted figures. It never recomputes amounts.
func (s *Service) Regenerate(ctx context.Context, payslipID string) (Record, error) {
	rec, err := s.store.Get(ctx, payslipID)
	if err != nil {
		return Record{}, err
	}

	emp, err := s.store.EmployeeInfo(ctx, rec.EmployeeID)
	if err != nil {
		return Record{}, err
	}

	filePath, err := s.renderer.Render(emp, rec)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	if err := s.store.UpdateFilePath(ctx, rec.ID, filePath); err != nil {
		return Record{}, err
	}
	rec.FilePath = filePath
	return rec, nil
}

func (s *Service) Get(ctx context.Context, payslipID string) (Record, error) {
	return s.store.Get(ctx, payslipID)
}

// Document returns the record for download. A record persisted without a
// rendered file yields ErrDocumentNotReady; Regenerate clears that state.
func (s *Service) Document(ctx context.Context, payslipID string) (Record, error) {
	rec, err := s.store.Get(ctx, payslipID)
	if err != nil {
		return Record{}, err
	}
	if rec.FilePath == "" {
		return rec, ErrDocumentNotReady
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, int, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *Service) validate(draft Draft) error {
	if draft.EmployeeID == "" {
		return ErrEmployeeRequired
	}
	if draft.Month < 1 || draft.Month > 12 {
		return ErrInvalidMonth
	}
	if draft.Year < 1000 || draft.Year > 9999 {
		return ErrInvalidYear
	}

	days, err := DaysInMonth(draft.Year, draft.Month)
	if err != nil {
		return err
	}
	if draft.WorkingDays < 0 || draft.PaidDays < 0 || draft.PaidDays > draft.WorkingDays || draft.WorkingDays > days {
		return ErrInvalidDays
	}

	for _, amount := range []float64{
		draft.CTC, draft.BasicSalary, draft.HRA, draft.ConveyanceAllowance,
		draft.MedicalAllowance, draft.SpecialAllowance,
		draft.ProvidentFund, draft.ProfessionalTax, draft.IncomeTax, draft.OtherDeductions,
	} {
		if amount < 0 {
			return ErrNegativeAmount
		}
	}

	// A zero basic/HRA/medical means the breakdown was never calculated.
	if draft.BasicSalary == 0 || draft.HRA == 0 || draft.MedicalAllowance == 0 {
		return ErrBreakdownMissing
	}
	return nil
}

func snapshot(draft Draft, totals Totals) Record {
	return Record{
		EmployeeID:          draft.EmployeeID,
		Month:               draft.Month,
		Year:                draft.Year,
		WorkingDays:         draft.WorkingDays,
		PaidDays:            draft.PaidDays,
		CTC:                 draft.CTC,
		BasicSalary:         draft.BasicSalary,
		HRA:                 draft.HRA,
		ConveyanceAllowance: draft.ConveyanceAllowance,
		MedicalAllowance:    draft.MedicalAllowance,
		SpecialAllowance:    draft.SpecialAllowance,
		ProvidentFund:       draft.ProvidentFund,
		ProfessionalTax:     draft.ProfessionalTax,
		IncomeTax:           draft.IncomeTax,
		OtherDeductions:     draft.OtherDeductions,
		GrossSalary:         totals.GrossSalary,
		TotalDeductions:     totals.TotalDeductions,
		NetSalary:           totals.NetSalary,
	}
}
