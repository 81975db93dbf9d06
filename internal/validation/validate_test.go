package validation

import (
	"testing"
	"time"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"user@example.com", ""},
		{"user.name+tag@sub.example.co", ""},
		{"", msgEmailRequired},
		{"   ", msgEmailRequired},
		{"no-at-sign", msgEmailInvalid},
		{"two@@example.com", msgEmailInvalid},
		{"user@nodot", msgEmailInvalid},
		{"user @example.com", msgEmailInvalid},
	}
	for _, c := range cases {
		if got := ValidateEmail(c.in); got != c.want {
			t.Errorf("ValidateEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com", ""},
		{"http://example.com/path?q=1", ""},
		{"", msgURLRequired},
		{"not a url", msgURLInvalid},
		{"/relative/only", msgURLInvalid},
	}
	for _, c := range cases {
		if got := ValidateURL(c.in); got != c.want {
			t.Errorf("ValidateURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", ""},
		{"5551234567", ""},
		{"555.123.4567", ""},
		{"", msgPhoneRequired},
		{"123", msgPhoneInvalid},
		{"call me maybe", msgPhoneInvalid},
	}
	for _, c := range cases {
		if got := ValidatePhone(c.in); got != c.want {
			t.Errorf("ValidatePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	cases := []struct {
		in   string
		want string
	}{
		{"1990-05-01", ""},
		{"01/02/1999", ""},
		{"", msgDateRequired},
		{"not-a-date", msgDateInvalid},
		{future, msgDateFuture},
	}
	for _, c := range cases {
		if got := ValidateDate(c.in); got != c.want {
			t.Errorf("ValidateDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateNumber(t *testing.T) {
	min, max := 1.0, 10.0
	cases := []struct {
		in       any
		min, max *float64
		want     string
	}{
		{5.0, &min, &max, ""},
		{"5", &min, &max, ""},
		{5, nil, nil, ""},
		{0.5, &min, nil, "Number must be at least 1"},
		{11.0, nil, &max, "Number must be no more than 10"},
		{"abc", nil, nil, msgNumberInvalid},
		{nil, nil, nil, msgNumberInvalid},
	}
	for _, c := range cases {
		if got := ValidateNumber(c.in, c.min, c.max); got != c.want {
			t.Errorf("ValidateNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateComponentName(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	cases := []struct {
		in   string
		want string
	}{
		{"about_me", ""},
		{"x", "Component name must be at least 2 characters"},
		{string(long), "Component name must be no more than 50 characters"},
		{"", msgNameRequired},
		{"Has Caps", msgNameInvalid},
		{"with123digits", msgNameInvalid},
	}
	for _, c := range cases {
		if got := ValidateComponentName(c.in); got != c.want {
			t.Errorf("ValidateComponentName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateZipCode(t *testing.T) {
	cases := map[string]string{
		"10001":      "",
		"10001-1234": "",
		"abc":        msgZipInvalid,
		"1234":       msgZipInvalid,
		"123456":     msgZipInvalid,
	}
	for in, want := range cases {
		if got := ValidateZipCode(in); got != want {
			t.Errorf("ValidateZipCode(%q) = %q, want %q", in, got, want)
		}
	}
}

// El required-check va primero: vacío + opcional es válido sin mirar formato.
func TestValidateFieldRequiredFirst(t *testing.T) {
	if got := ValidateField("", repository.TypeEmail, Options{Required: true}); got != msgRequired {
		t.Errorf("empty required email: got %q", got)
	}
	if got := ValidateField("", repository.TypeEmail, Options{}); got != "" {
		t.Errorf("empty optional email: got %q", got)
	}
	if got := ValidateField(nil, repository.TypeText, Options{Required: true}); got != msgRequired {
		t.Errorf("nil required text: got %q", got)
	}
	if got := ValidateField("bad", repository.TypeEmail, Options{}); got != msgEmailInvalid {
		t.Errorf("invalid optional email: got %q", got)
	}
}

func TestValidateFieldNumberAcceptsNumeric(t *testing.T) {
	if got := ValidateField(42, repository.TypeNumber, Options{Required: true}); got != "" {
		t.Errorf("int number: got %q", got)
	}
	if got := ValidateField(3.5, repository.TypeNumber, Options{Required: true}); got != "" {
		t.Errorf("float number: got %q", got)
	}
}

func TestValidateFieldUnknownType(t *testing.T) {
	if got := ValidateField("x", repository.ComponentType("bogus"), Options{}); got != msgUnknownType {
		t.Errorf("got %q", got)
	}
}
