package domain

// LoanProduct describes one entry of the static product catalog served at
// GET /api/loans/types. The catalog's amount bounds are the single source
// for per-type loan amount validation.
type LoanProduct struct {
	Type         LoanType `json:"type"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MinAmount    float64  `json:"minAmount"`
	MaxAmount    float64  `json:"maxAmount"`
	MinTerm      int      `json:"minTerm"`
	MaxTerm      int      `json:"maxTerm"`
	InterestRate string   `json:"interestRate"`
	Features     []string `json:"features"`
}

// LoanCatalog is the marketing catalog of offered loan products.
var LoanCatalog = []LoanProduct{
	{
		Type:         LoanMortgage,
		Name:         "Mortgage Loan",
		Description:  "Purchase or refinance your home with competitive rates",
		MinAmount:    50000,
		MaxAmount:    2000000,
		MinTerm:      15,
		MaxTerm:      30,
		InterestRate: "3.5% - 5.5% APR",
		Features: []string{
			"Fixed & Adjustable Rates",
			"15-30 Year Terms",
			"Low Down Payments",
			"Quick Approval Process",
		},
	},
	{
		Type:         LoanAuto,
		Name:         "Auto Loan",
		Description:  "Finance your new or used vehicle with great rates",
		MinAmount:    5000,
		MaxAmount:    100000,
		MinTerm:      2,
		MaxTerm:      7,
		InterestRate: "4.0% - 6.5% APR",
		Features: []string{
			"New & Used Vehicles",
			"2-7 Year Terms",
			"Competitive Rates",
			"Online Application",
		},
	},
	{
		Type:         LoanBusiness,
		Name:         "Business Loan",
		Description:  "Grow your business with our flexible financing options",
		MinAmount:    10000,
		MaxAmount:    500000,
		MinTerm:      1,
		MaxTerm:      10,
		InterestRate: "5.0% - 8.0% APR",
		Features: []string{
			"Working Capital",
			"Equipment Financing",
			"1-10 Year Terms",
			"Quick Funding",
		},
	},
	{
		Type:         LoanPersonal,
		Name:         "Personal Loan",
		Description:  "Get funds for personal expenses with easy approval",
		MinAmount:    1000,
		MaxAmount:    50000,
		MinTerm:      1,
		MaxTerm:      5,
		InterestRate: "6.0% - 12.0% APR",
		Features: []string{
			"No Collateral Required",
			"Fast Funding",
			"Flexible Terms",
			"Online Management",
		},
	},
	{
		Type:         LoanStudent,
		Name:         "Student Loan",
		Description:  "Invest in your education with flexible repayment options",
		MinAmount:    1000,
		MaxAmount:    150000,
		MinTerm:      5,
		MaxTerm:      15,
		InterestRate: "4.5% - 7.0% APR",
		Features: []string{
			"Undergraduate & Graduate",
			"Deferred Payments",
			"Fixed Low Rates",
			"Flexible Terms",
		},
	},
	{
		Type:         LoanHomeEquity,
		Name:         "Home Equity Loan",
		Description:  "Access the equity in your home for major expenses",
		MinAmount:    10000,
		MaxAmount:    500000,
		MinTerm:      5,
		MaxTerm:      30,
		InterestRate: "5.0% - 7.5% APR",
		Features: []string{
			"Fixed Rates",
			"5-30 Year Terms",
			"Tax Benefits",
			"Competitive Rates",
		},
	},
}

// AmountBounds is the allowed loan amount range for a single type.
type AmountBounds struct {
	Min float64
	Max float64
}

// BoundsFor returns the catalog amount bounds for t. Unknown types fall back
// to a wide 1,000-1,000,000 range so validation still rejects absurd amounts
// before the enum check reports the bad type.
func BoundsFor(t LoanType) AmountBounds {
	for _, p := range LoanCatalog {
		if p.Type == t {
			return AmountBounds{Min: p.MinAmount, Max: p.MaxAmount}
		}
	}
	return AmountBounds{Min: 1000, Max: 1000000}
}

// MinRecommendedIncome is the advisory annual-income floor per loan type
// used by the eligibility heuristic. Student loans have no floor.
var MinRecommendedIncome = map[LoanType]float64{
	LoanMortgage:   50000,
	LoanAuto:       25000,
	LoanBusiness:   60000,
	LoanPersonal:   20000,
	LoanStudent:    0,
	LoanHomeEquity: 40000,
}
