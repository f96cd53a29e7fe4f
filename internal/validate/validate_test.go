package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"john@example.com",
		"john.doe@example.com",
		"j-d@mail.example.co",
		"user_1@sub.domain.org",
	}
	for _, v := range valid {
		if r := Email(v); !r.Valid {
			t.Errorf("Email(%q) rejected: %s", v, r.Message)
		}
	}
	invalid := []string{"", "plain", "no@tld", "@example.com", "a b@example.com"}
	for _, v := range invalid {
		if r := Email(v); r.Valid {
			t.Errorf("Email(%q) accepted, want rejection", v)
		}
	}
}

func TestPhone(t *testing.T) {
	valid := []string{"12125551234", "+1 (212) 555-1234", "212.555.1234", "9"}
	for _, v := range valid {
		if r := Phone(v); !r.Valid {
			t.Errorf("Phone(%q) rejected: %s", v, r.Message)
		}
	}
	invalid := []string{"", "0123456789", "phone", "123456789012345678", "12a34"}
	for _, v := range invalid {
		if r := Phone(v); r.Valid {
			t.Errorf("Phone(%q) accepted, want rejection", v)
		}
	}
}

func TestSSN(t *testing.T) {
	if r := SSN("123-45-6789"); !r.Valid {
		t.Errorf("valid SSN rejected: %s", r.Message)
	}
	for _, v := range []string{"", "123456789", "123-456-789", "12-34-5678", "abc-de-fghi"} {
		if r := SSN(v); r.Valid {
			t.Errorf("SSN(%q) accepted, want rejection", v)
		}
	}
}

func TestZipCode(t *testing.T) {
	for _, v := range []string{"", "10001", "10001-1234"} {
		if r := ZipCode(v); !r.Valid {
			t.Errorf("ZipCode(%q) rejected: %s", v, r.Message)
		}
	}
	for _, v := range []string{"1000", "100011", "10001-12", "abcde"} {
		if r := ZipCode(v); r.Valid {
			t.Errorf("ZipCode(%q) accepted, want rejection", v)
		}
	}
}

func TestDateOfBirthAgeBoundaries(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		dob   time.Time
		valid bool
	}{
		{"seventeen", time.Date(2009, 6, 16, 0, 0, 0, 0, time.UTC), false},
		{"eighteen today", time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"eighteen tomorrow", time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC), false},
		{"middle aged", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"exactly hundred", time.Date(1926, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"over hundred", time.Date(1925, 6, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		r := DateOfBirth(tc.dob, now)
		if r.Valid != tc.valid {
			t.Errorf("%s: DateOfBirth valid=%v, want %v (msg=%q)", tc.name, r.Valid, tc.valid, r.Message)
		}
	}

	if r := DateOfBirth(time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC), now); r.Valid {
		t.Error("under-18 accepted")
	} else if !strings.Contains(r.Message, "18") {
		t.Errorf("under-18 message should mention the age threshold, got %q", r.Message)
	}
}

func TestLoanAmountBounds(t *testing.T) {
	cases := []struct {
		t      domain.LoanType
		amount float64
		valid  bool
	}{
		{domain.LoanMortgage, 49_999, false},
		{domain.LoanMortgage, 50_000, true},
		{domain.LoanMortgage, 2_000_000, true},
		{domain.LoanMortgage, 2_000_001, false},
		{domain.LoanAuto, 4_999, false},
		{domain.LoanAuto, 100_000, true},
		{domain.LoanPersonal, 50_000, true},
		{domain.LoanPersonal, 60_000, false},
		{domain.LoanStudent, 150_000, true},
		{domain.LoanHomeEquity, 9_000, false},
		{domain.LoanBusiness, 500_001, false},
		{domain.LoanType("unknown"), 999, false},
		{domain.LoanType("unknown"), 1_000_000, true},
	}
	for _, tc := range cases {
		r := LoanAmount(tc.t, tc.amount)
		if r.Valid != tc.valid {
			t.Errorf("LoanAmount(%s, %.0f) valid=%v, want %v (msg=%q)",
				tc.t, tc.amount, r.Valid, tc.valid, r.Message)
		}
	}
}

func TestLoanAmountMessageNamesTypeAndBound(t *testing.T) {
	r := LoanAmount(domain.LoanPersonal, 60_000)
	if r.Valid {
		t.Fatal("60000 accepted for personal loan")
	}
	if !strings.Contains(r.Message, "$50,000") {
		t.Errorf("message %q should cite $50,000", r.Message)
	}
	if !strings.Contains(r.Message, "personal") {
		t.Errorf("message %q should cite the loan type", r.Message)
	}
}

func TestFormatUSD(t *testing.T) {
	cases := map[float64]string{
		0:         "$0",
		999:       "$999",
		1_000:     "$1,000",
		50_000:    "$50,000",
		2_000_000: "$2,000,000",
	}
	for in, want := range cases {
		if got := FormatUSD(in); got != want {
			t.Errorf("FormatUSD(%.0f) = %q, want %q", in, got, want)
		}
	}
}

func TestPersonName(t *testing.T) {
	if r := PersonName("First name", "John"); !r.Valid {
		t.Errorf("plain name rejected: %s", r.Message)
	}
	for _, v := range []string{"", "J", "John3", strings.Repeat("a", 51)} {
		if r := PersonName("First name", v); r.Valid {
			t.Errorf("PersonName(%q) accepted, want rejection", v)
		}
	}
}

func TestMessageBody(t *testing.T) {
	if r := MessageBody("I would like to ask about mortgage rates."); !r.Valid {
		t.Errorf("valid body rejected: %s", r.Message)
	}
	if r := MessageBody("too short"); r.Valid {
		t.Error("9-char body accepted")
	}
	if r := MessageBody(strings.Repeat("x", 2001)); r.Valid {
		t.Error("2001-char body accepted")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  John.Doe@Example.COM "); got != "john.doe@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
