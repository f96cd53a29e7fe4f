// Package eligibility implements the advisory loan-eligibility heuristic.
//
// The heuristic is a pure function: same input, same output, no side
// effects. It never blocks persistence of an application; its result is
// returned alongside the stored record so the caller can display guidance.
//
// One rule applies uniformly: a verdict is eligible if and only if no
// reasons were collected.
package eligibility

import (
	"fmt"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
)

const (
	// dtiCeiling caps the estimated payment at 35% of monthly income.
	dtiCeiling = 0.35
	// paymentRate is the flat percentage-of-principal approximation of a
	// monthly payment. Not a true amortization formula.
	paymentRate = 0.006
	// incomeMultiple caps the requested amount at half the annual income in
	// the query-parameter sanity check.
	incomeMultiple = 0.5
)

// Input is what the heuristic considers. LoanType may be any string value;
// unknown types simply have no minimum-income floor.
type Input struct {
	AnnualIncome float64
	LoanAmount   float64
	CreditScore  domain.CreditScore
	LoanType     domain.LoanType
}

// Result is the heuristic verdict. Eligible is true iff Reasons is empty.
type Result struct {
	Eligible    bool     `json:"eligible"`
	Reasons     []string `json:"reasons"`
	Suggestions []string `json:"suggestions"`
}

// Check runs the eligibility heuristic used after application intake.
func Check(in Input) Result {
	r := Result{Reasons: []string{}, Suggestions: []string{}}

	if in.CreditScore == domain.CreditPoor {
		r.Reasons = append(r.Reasons, "Credit score below minimum requirement")
		r.Suggestions = append(r.Suggestions, "Consider improving your credit score before applying")
	}

	monthlyIncome := in.AnnualIncome / 12
	estimatedPayment := in.LoanAmount * paymentRate
	if estimatedPayment > monthlyIncome*dtiCeiling {
		r.Reasons = append(r.Reasons, "Loan amount may be too high for your income")
		r.Suggestions = append(r.Suggestions, "Consider applying for a lower loan amount")
	}

	if min, ok := domain.MinRecommendedIncome[in.LoanType]; ok && min > 0 && in.AnnualIncome < min {
		r.Reasons = append(r.Reasons,
			fmt.Sprintf("Annual income below recommended minimum for %s loan", in.LoanType))
		r.Suggestions = append(r.Suggestions,
			"Consider applying for a different loan type or lower amount")
	}

	r.Eligible = len(r.Reasons) == 0
	return r
}

// CheckQuery runs the heuristic for the query-parameter endpoint, which adds
// a coarse amount-to-income sanity check on top of Check. Amount and income
// are both optional there; the extra rule only fires when both are present.
func CheckQuery(in Input) Result {
	r := Check(in)
	if in.LoanAmount > 0 && in.AnnualIncome > 0 && in.LoanAmount > in.AnnualIncome*incomeMultiple {
		reason := "Loan amount may be too high for your income level"
		if !contains(r.Reasons, reason) {
			r.Reasons = append(r.Reasons, reason)
			r.Suggestions = append(r.Suggestions, "Consider applying for a lower loan amount")
		}
	}
	r.Eligible = len(r.Reasons) == 0
	return r
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
