package validator

import (
	"testing"

	"github.com/shopspring/decimal"
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

func TestIsValidIFSC(t *testing.T) {
	valid := []string{"HDFC0001234", "SBIN0ABC123"}
	invalid := []string{"HDFC1001234", "hdfc0001234", "HDFC000123", "HDF0001234X", ""}
	for _, code := range valid {
		if !IsValidIFSC(code) {
			t.Errorf("IsValidIFSC(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidIFSC(code) {
			t.Errorf("IsValidIFSC(%q) = true, want false", code)
		}
	}
}

func TestIsValidPAN(t *testing.T) {
	if !IsValidPAN("ABCDE1234F") {
		t.Error("IsValidPAN(ABCDE1234F) = false, want true")
	}
	for _, pan := range []string{"ABCD1234F", "abcde1234f", "ABCDE12345", ""} {
		if IsValidPAN(pan) {
			t.Errorf("IsValidPAN(%q) = true, want false", pan)
		}
	}
}

func TestIsValidAadhaar(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"234567890123", true},
		{"123456789012", false},
		{"23456789012", false},
		{"2345678901ab", false},
	}
	for _, c := range cases {
		if got := IsValidAadhaar(c.input); got != c.want {
			t.Errorf("IsValidAadhaar(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidPincode(t *testing.T) {
	cases := map[string]bool{
		"560001":  true,
		"060001":  false,
		"56000":   false,
		"5600011": false,
	}
	for input, want := range cases {
		if got := IsValidPincode(input); got != want {
			t.Errorf("IsValidPincode(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"9876543210", "+91 98765 43210", "080-2345-6789"}
	invalid := []string{"12345", "98765abcde", "+91987654321099"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	if !IsValidEmployeeID("EMP-001") {
		t.Error("IsValidEmployeeID(EMP-001) = false, want true")
	}
	if IsValidEmployeeID("") || IsValidEmployeeID("has space") || IsValidEmployeeID("ABCDEFGHIJKLMNOPQRSTU") {
		t.Error("IsValidEmployeeID accepted an invalid id")
	}
}

func TestDecimalHelpers(t *testing.T) {
	if !IsNonNegative(decimal.Zero) || IsNonNegative(decimal.NewFromInt(-1)) {
		t.Error("IsNonNegative mismatch")
	}
	if !HasMaxTwoDecimals(decimal.RequireFromString("10.25")) {
		t.Error("HasMaxTwoDecimals(10.25) = false, want true")
	}
	if HasMaxTwoDecimals(decimal.RequireFromString("10.255")) {
		t.Error("HasMaxTwoDecimals(10.255) = true, want false")
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatal("empty ValidationErrors.Err() should be nil")
	}
	errs.Add("name", "is required")
	err := errs.Err()
	if err == nil || err.Error() != "name: is required" {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs.ToMap()["name"] != "is required" {
		t.Fatal("ToMap missing field")
	}
}
