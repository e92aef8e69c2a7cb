package utils

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"a+tag@gov.in",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"user@",
		"user@nodot",
		"user name@example.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateMobile(t *testing.T) {
	if !ValidateMobile("9876543210") {
		t.Error("10-digit number rejected")
	}

	invalid := []string{"", "12345", "98765432101", "98765abc10", "+919876543210"}
	for _, mobile := range invalid {
		if ValidateMobile(mobile) {
			t.Errorf("ValidateMobile(%q) = true, want false", mobile)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("longenough"); !ok {
		t.Error("valid password rejected")
	}
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Error("short password accepted")
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello  "); got != "hello" {
		t.Errorf("SanitizeInput trim = %q", got)
	}
	if got := SanitizeInput("a\x00b"); got != "ab" {
		t.Errorf("SanitizeInput null byte = %q", got)
	}
}

func TestGenerateIDs(t *testing.T) {
	userID := GenerateUserID()
	if !strings.HasPrefix(userID, "UID") || len(userID) != 11 {
		t.Errorf("user id format wrong: %q", userID)
	}

	adminID := GenerateAdminID()
	if !strings.HasPrefix(adminID, "A") || len(adminID) != 9 {
		t.Errorf("admin id format wrong: %q", adminID)
	}

	deptID := GenerateDepartmentID()
	if !strings.HasPrefix(deptID, "DEPT_") || len(deptID) != 13 {
		t.Errorf("department id format wrong: %q", deptID)
	}

	serviceID := GenerateServiceID(deptID)
	if !strings.HasPrefix(serviceID, "SERV_") || !strings.HasSuffix(serviceID, "@"+deptID) {
		t.Errorf("service id format wrong: %q", serviceID)
	}

	if GenerateUserID() == GenerateUserID() {
		t.Error("consecutive user ids collided")
	}
}

func TestHashAadhaar(t *testing.T) {
	h1 := HashAadhaar("123412341234")
	h2 := HashAadhaar("123412341234")
	if h1 != h2 {
		t.Error("hash not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if h1 == "123412341234" {
		t.Error("raw value leaked")
	}
	if HashAadhaar("123412341235") == h1 {
		t.Error("distinct inputs collided")
	}
}
