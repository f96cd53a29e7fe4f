package domain

import "testing"

func TestCatalogCoversEveryLoanType(t *testing.T) {
	seen := map[LoanType]bool{}
	for _, p := range LoanCatalog {
		seen[p.Type] = true
	}
	for _, lt := range LoanTypes {
		if !seen[lt] {
			t.Errorf("catalog missing product for %q", lt)
		}
	}
	if len(LoanCatalog) != len(LoanTypes) {
		t.Errorf("catalog has %d products, want %d", len(LoanCatalog), len(LoanTypes))
	}
}

func TestBoundsForMatchesCatalog(t *testing.T) {
	cases := []struct {
		loanType LoanType
		min, max float64
	}{
		{LoanMortgage, 50000, 2000000},
		{LoanAuto, 5000, 100000},
		{LoanBusiness, 10000, 500000},
		{LoanPersonal, 1000, 50000},
		{LoanStudent, 1000, 150000},
		{LoanHomeEquity, 10000, 500000},
	}
	for _, tc := range cases {
		b := BoundsFor(tc.loanType)
		if b.Min != tc.min || b.Max != tc.max {
			t.Errorf("BoundsFor(%q) = [%v, %v], want [%v, %v]", tc.loanType, b.Min, b.Max, tc.min, tc.max)
		}
	}
}

func TestBoundsForUnknownTypeFallsBack(t *testing.T) {
	b := BoundsFor("boat")
	if b.Min != 1000 || b.Max != 1000000 {
		t.Errorf("fallback bounds = [%v, %v], want [1000, 1000000]", b.Min, b.Max)
	}
}

func TestMinRecommendedIncomeFloors(t *testing.T) {
	if MinRecommendedIncome[LoanStudent] != 0 {
		t.Error("student loans must have no income floor")
	}
	if MinRecommendedIncome[LoanMortgage] != 50000 {
		t.Errorf("mortgage floor = %v, want 50000", MinRecommendedIncome[LoanMortgage])
	}
	if _, ok := MinRecommendedIncome[LoanType("boat")]; ok {
		t.Error("unknown types must not have a floor")
	}
}
