package domain

import (
	"time"
)

// ApplicationStatus enumerates the lifecycle states of a loan application.
type ApplicationStatus string

const (
	ApplicationSubmitted     ApplicationStatus = "submitted"
	ApplicationUnderReview   ApplicationStatus = "under_review"
	ApplicationApproved      ApplicationStatus = "approved"
	ApplicationRejected      ApplicationStatus = "rejected"
	ApplicationNeedsMoreInfo ApplicationStatus = "additional_info_required"
)

// ApplicationStatuses lists every valid application status.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationSubmitted,
	ApplicationUnderReview,
	ApplicationApproved,
	ApplicationRejected,
	ApplicationNeedsMoreInfo,
}

// IsValid reports whether s is one of the enumerated application statuses.
func (s ApplicationStatus) IsValid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// LoanType enumerates the loan products an applicant can apply for.
type LoanType string

const (
	LoanMortgage   LoanType = "mortgage"
	LoanAuto       LoanType = "auto"
	LoanPersonal   LoanType = "personal"
	LoanBusiness   LoanType = "business"
	LoanStudent    LoanType = "student"
	LoanHomeEquity LoanType = "home-equity"
)

// LoanTypes lists every valid loan type.
var LoanTypes = []LoanType{
	LoanMortgage, LoanAuto, LoanPersonal, LoanBusiness, LoanStudent, LoanHomeEquity,
}

// IsValid reports whether t is one of the enumerated loan types.
func (t LoanType) IsValid() bool {
	for _, v := range LoanTypes {
		if t == v {
			return true
		}
	}
	return false
}

// EmploymentStatus enumerates the accepted employment situations.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self-employed"
	EmploymentRetired      EmploymentStatus = "retired"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentStudent      EmploymentStatus = "student"
	EmploymentMilitary     EmploymentStatus = "military"
)

// EmploymentStatuses lists every valid employment status.
var EmploymentStatuses = []EmploymentStatus{
	EmploymentEmployed, EmploymentSelfEmployed, EmploymentRetired,
	EmploymentUnemployed, EmploymentStudent, EmploymentMilitary,
}

// IsValid reports whether e is one of the enumerated employment statuses.
func (e EmploymentStatus) IsValid() bool {
	for _, v := range EmploymentStatuses {
		if e == v {
			return true
		}
	}
	return false
}

// CreditScore is a coarse categorical stand-in for a numeric credit score.
type CreditScore string

const (
	CreditExcellent CreditScore = "excellent"
	CreditGood      CreditScore = "good"
	CreditFair      CreditScore = "fair"
	CreditPoor      CreditScore = "poor"
	CreditUnset     CreditScore = ""
)

// IsValid reports whether c is one of the enumerated credit buckets
// (the empty bucket is valid: applicants may decline to self-report).
func (c CreditScore) IsValid() bool {
	switch c {
	case CreditExcellent, CreditGood, CreditFair, CreditPoor, CreditUnset:
		return true
	}
	return false
}

// ContactMethod enumerates how an applicant prefers to be reached.
type ContactMethod string

const (
	ContactByPhone ContactMethod = "phone"
	ContactByEmail ContactMethod = "email"
	ContactByText  ContactMethod = "text"
)

// IsValid reports whether m is one of the enumerated contact methods.
func (m ContactMethod) IsValid() bool {
	switch m {
	case ContactByPhone, ContactByEmail, ContactByText:
		return true
	}
	return false
}

// ContactTime enumerates the preferred time of day for contact.
type ContactTime string

const (
	ContactMorning   ContactTime = "morning"
	ContactAfternoon ContactTime = "afternoon"
	ContactEvening   ContactTime = "evening"
)

// IsValid reports whether t is one of the enumerated contact times.
func (t ContactTime) IsValid() bool {
	switch t {
	case ContactMorning, ContactAfternoon, ContactEvening:
		return true
	}
	return false
}

// LoanApplication is a persisted loan application record.
//
// ApplicationID is the human-readable business identifier handed to the
// applicant (APP########XXXXXX); ID is the internal row key. SSN and
// IPAddress are sensitive and must be stripped before leaving the admin
// surface (see Sanitized).
type LoanApplication struct {
	ID            string `json:"id" db:"id"`
	ApplicationID string `json:"applicationId" db:"application_id"`

	// Personal information
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Address     string    `json:"address,omitempty" db:"address"`
	City        string    `json:"city,omitempty" db:"city"`
	State       string    `json:"state,omitempty" db:"state"`
	ZipCode     string    `json:"zipCode,omitempty" db:"zip_code"`
	DateOfBirth time.Time `json:"dateOfBirth" db:"date_of_birth"`
	SSN         string    `json:"ssn,omitempty" db:"ssn"`

	// Loan information
	LoanType         LoanType         `json:"loanType" db:"loan_type"`
	LoanAmount       float64          `json:"loanAmount" db:"loan_amount"`
	LoanPurpose      string           `json:"loanPurpose,omitempty" db:"loan_purpose"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus" db:"employment_status"`
	EmployerName     string           `json:"employerName,omitempty" db:"employer_name"`
	JobTitle         string           `json:"jobTitle,omitempty" db:"job_title"`
	AnnualIncome     float64          `json:"annualIncome" db:"annual_income"`
	AdditionalIncome float64          `json:"additionalIncome" db:"additional_income"`

	// Financial information
	CreditScore      CreditScore `json:"creditScore,omitempty" db:"credit_score"`
	TotalAssets      float64     `json:"totalAssets,omitempty" db:"total_assets"`
	TotalLiabilities float64     `json:"totalLiabilities,omitempty" db:"total_liabilities"`
	HousingPayment   float64     `json:"housingPayment,omitempty" db:"housing_payment"`

	// Contact preference
	ContactMethod ContactMethod `json:"contactMethod" db:"contact_method"`
	BestTime      ContactTime   `json:"bestTime" db:"best_time"`

	// Metadata
	Status      ApplicationStatus `json:"status" db:"status"`
	IPAddress   string            `json:"ipAddress,omitempty" db:"ip_address"`
	Notes       string            `json:"notes,omitempty" db:"notes"`
	SubmittedAt time.Time         `json:"submittedAt" db:"submitted_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

// FullName joins the applicant's first and last name.
func (a *LoanApplication) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Sanitized returns a copy with sensitive fields (SSN, origin address)
// cleared. Admin listings and public status lookups must use this.
func (a *LoanApplication) Sanitized() LoanApplication {
	cp := *a
	cp.SSN = ""
	cp.IPAddress = ""
	return cp
}
