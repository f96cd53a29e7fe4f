// Package validate implements the field-level syntactic checks applied to
// loan applications and contact messages. Every function is pure and
// deterministic: the same rules run in the browser for step progression, but
// the server-side invocation here is the authoritative gate.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
)

// Result is the outcome of a single field check.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result             { return Result{Valid: true} }
func fail(msg string) Result { return Result{Valid: false, Message: msg} }

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
	ssnRe   = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Email checks a standard local@domain.tld shape.
func Email(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return fail("Email is required")
	}
	if !emailRe.MatchString(v) {
		return fail("Please enter a valid email address")
	}
	return ok()
}

// NormalizeEmail lowercases and trims an email for storage and window keys.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Phone checks that the value, after stripping common separators, is 1-16
// digits with a nonzero first digit.
func Phone(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return fail("Phone number is required")
	}
	digits := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "+", "").Replace(v)
	if len(digits) < 1 || len(digits) > 16 {
		return fail("Please enter a valid phone number")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fail("Please enter a valid phone number")
		}
	}
	if digits[0] == '0' {
		return fail("Please enter a valid phone number")
	}
	return ok()
}

// SSN checks the exact NNN-NN-NNNN form.
func SSN(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return fail("SSN is required")
	}
	if !ssnRe.MatchString(v) {
		return fail("SSN must be in format XXX-XX-XXXX")
	}
	return ok()
}

// ZipCode checks 5 digits with an optional -NNNN suffix. Empty is allowed;
// the field is optional.
func ZipCode(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return ok()
	}
	if !zipRe.MatchString(v) {
		return fail("Please enter a valid ZIP code")
	}
	return ok()
}

// PersonName checks a 2-50 character letters-and-spaces name.
func PersonName(field, v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return fail(field + " is required")
	}
	if len(v) < 2 || len(v) > 50 {
		return fail(field + " must be between 2 and 50 characters")
	}
	if !nameRe.MatchString(v) {
		return fail(field + " can only contain letters and spaces")
	}
	return ok()
}

// Age returns the applicant's age at now, as the calendar-year difference
// adjusted by month/day comparison.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// DateOfBirth requires an age between 18 and 100 inclusive at now.
func DateOfBirth(dob time.Time, now time.Time) Result {
	if dob.IsZero() {
		return fail("Date of birth is required")
	}
	age := Age(dob, now)
	if age < 18 {
		return fail("You must be at least 18 years old")
	}
	if age > 100 {
		return fail("Please enter a valid date of birth")
	}
	return ok()
}

// LoanAmount enforces the per-type bounds table. Messages name the loan type
// and the violated bound with a thousands-separated dollar figure.
func LoanAmount(t domain.LoanType, amount float64) Result {
	b := domain.BoundsFor(t)
	typeName := string(t)
	if typeName == "" {
		typeName = "this"
	}
	if amount < b.Min {
		return fail(fmt.Sprintf("Loan amount must be at least %s for a %s loan", FormatUSD(b.Min), typeName))
	}
	if amount > b.Max {
		return fail(fmt.Sprintf("Loan amount cannot exceed %s for a %s loan", FormatUSD(b.Max), typeName))
	}
	return ok()
}

// MessageBody checks the 10-2000 character contact message bound.
func MessageBody(v string) Result {
	v = strings.TrimSpace(v)
	if v == "" {
		return fail("Message is required")
	}
	if len(v) < 10 || len(v) > 2000 {
		return fail("Message must be between 10 and 2000 characters")
	}
	return ok()
}

// NonNegative checks an optional monetary field.
func NonNegative(field string, v float64) Result {
	if v < 0 {
		return fail(field + " cannot be negative")
	}
	return ok()
}

// FormatUSD renders an amount as a dollar figure with thousands separators,
// e.g. 50000 → "$50,000".
func FormatUSD(v float64) string {
	whole := strconv.FormatInt(int64(v), 10)
	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}
	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
