package logger

import "testing"

func TestRedactEmail(t *testing.T) {
	cases := map[string]string{
		"john.doe@example.com": "jo***@example.com",
		"ab@example.com":       "***@example.com",
		"a@example.com":        "***@example.com",
		"not-an-email":         "***@***",
		"two@at@signs":         "***@***",
	}
	for in, want := range cases {
		if got := RedactEmail(in); got != want {
			t.Errorf("RedactEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRedactPhone(t *testing.T) {
	cases := map[string]string{
		"(555) 123-4567":  "***4567",
		"555-0142":        "***0142",
		"+1 800 123 4567": "***4567",
		"1234":            "***",
		"":                "***",
	}
	for in, want := range cases {
		if got := RedactPhone(in); got != want {
			t.Errorf("RedactPhone(%q) = %q, want %q", in, got, want)
		}
	}
}
