package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/eligibility"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/httputil"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/application"
)

const eligibilityDisclaimer = "This is a basic eligibility check. Final approval is subject to full application review."

// Apply accepts a new loan application.
//
//	POST /api/loans/apply
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	var in application.SubmitInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	in.IPAddress = r.RemoteAddr

	res, err := h.apps.Submit(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		h.notifier.ApplicationReceived(ctx, res.Application)
	}()

	httputil.Created(w, "Loan application submitted successfully", map[string]interface{}{
		"applicationId": res.Application.ApplicationID,
		"status":        res.Application.Status,
		"submittedAt":   res.Application.SubmittedAt,
		"eligibility":   res.Eligibility,
		"nextSteps":     res.NextSteps,
	})
}

// GetApplicationStatus returns the public status view for one application.
//
//	GET /api/loans/status/{applicationId}
func (h *Handlers) GetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "applicationId")
	view, err := h.apps.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			h.writeError(w, apperr.NotFound("Application not found"))
			return
		}
		h.writeError(w, err)
		return
	}
	httputil.OK(w, view)
}

// ListApplications returns a filtered, paginated application listing.
//
//	GET /api/loans/applications?page&limit&status&loanType
func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	apps, pg, err := h.apps.List(r.Context(), application.ListFilter{
		Status:   domain.ApplicationStatus(q.Get("status")),
		LoanType: domain.LoanType(q.Get("loanType")),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"applications": apps,
		"pagination":   pg,
	})
}

type updateApplicationStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateApplicationStatus transitions an application's review status.
//
//	PATCH /api/loans/applications/{applicationId}/status
func (h *Handlers) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req updateApplicationStatusRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "applicationId")
	err := h.apps.UpdateStatus(r.Context(), id, domain.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			h.writeError(w, apperr.NotFound("Application not found"))
			return
		}
		h.writeError(w, err)
		return
	}
	httputil.Success(w, "Application status updated successfully", map[string]interface{}{
		"applicationId": id,
		"status":        req.Status,
	})
}

// GetLoanStatistics returns the admin dashboard aggregates.
//
//	GET /api/loans/statistics
func (h *Handlers) GetLoanStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.apps.Statistics(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.OK(w, stats)
}

// GetLoanTypes serves the static product catalog.
//
//	GET /api/loans/types
func (h *Handlers) GetLoanTypes(w http.ResponseWriter, _ *http.Request) {
	httputil.OK(w, map[string]interface{}{"loanTypes": domain.LoanCatalog})
}

// CheckEligibility runs the advisory heuristic from query parameters without
// persisting anything.
//
//	GET /api/loans/eligibility?loanType&creditScore&annualIncome&loanAmount
func (h *Handlers) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	income, _ := strconv.ParseFloat(q.Get("annualIncome"), 64)
	amount, _ := strconv.ParseFloat(q.Get("loanAmount"), 64)

	verdict := eligibility.CheckQuery(eligibility.Input{
		AnnualIncome: income,
		LoanAmount:   amount,
		CreditScore:  domain.CreditScore(q.Get("creditScore")),
		LoanType:     domain.LoanType(q.Get("loanType")),
	})

	httputil.OK(w, map[string]interface{}{
		"eligible":    verdict.Eligible,
		"reasons":     verdict.Reasons,
		"suggestions": verdict.Suggestions,
		"disclaimer":  eligibilityDisclaimer,
	})
}

// writeError logs internal errors and writes the enveloped response.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	if !e.Operational() {
		h.log.Error("request failed", zap.Error(err))
	}
	httputil.FromAppError(w, e)
}
