package validator

import (
	"math"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidLatitude(t *testing.T) {
	cases := []struct {
		input float64
		want  bool
	}{
		{0, true},
		{90, true},
		{-90, true},
		{90.0001, false},
		{-91, false},
		{math.NaN(), false},
	}
	for _, c := range cases {
		got := IsValidLatitude(c.input)
		if got != c.want {
			t.Errorf("IsValidLatitude(%v) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidLongitude(t *testing.T) {
	cases := []struct {
		input float64
		want  bool
	}{
		{0, true},
		{180, true},
		{-180, true},
		{180.5, false},
		{-181, false},
		{math.NaN(), false},
	}
	for _, c := range cases {
		got := IsValidLongitude(c.input)
		if got != c.want {
			t.Errorf("IsValidLongitude(%v) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-02-30"); ok {
		t.Error("IsValidDate accepted an impossible date")
	}
	if _, ok := IsValidDate("2026-01-15"); !ok {
		t.Error("IsValidDate rejected a valid date")
	}
}
