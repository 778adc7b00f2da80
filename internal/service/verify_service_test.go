package service_test

import (
	"context"
	"testing"

	"github.com/sterlingcover/leadgen-backend/internal/service"
	"github.com/sterlingcover/leadgen-backend/internal/verify"
)

func TestDemoModeAcceptsSixDigitCodes(t *testing.T) {
	svc := &service.VerifyService{Provider: &verify.DemoProvider{}}

	cases := []struct {
		code     string
		approved bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12345a", false},
		{"abcdef", false},
	}

	for _, tc := range cases {
		result, err := svc.CheckOTP(context.Background(), "+15551234567", tc.code, "")
		if err != nil {
			t.Fatalf("CheckOTP(%q) failed: %v", tc.code, err)
		}
		if result.Approved != tc.approved {
			t.Errorf("CheckOTP(%q): expected approved=%v, got %v", tc.code, tc.approved, result.Approved)
		}
	}
}

func TestDemoModeIssuesVerificationSID(t *testing.T) {
	svc := &service.VerifyService{Provider: &verify.DemoProvider{}}

	result, err := svc.SendOTP(context.Background(), "+15551234567", "")
	if err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	if result.VerificationSID == "" {
		t.Error("expected a verification SID")
	}
}

func TestSendOTPRequiresPhoneNumber(t *testing.T) {
	svc := &service.VerifyService{Provider: &verify.DemoProvider{}}

	if _, err := svc.SendOTP(context.Background(), "", ""); err == nil {
		t.Error("expected an error for a missing phone number")
	}
	if _, err := svc.CheckOTP(context.Background(), "+15551234567", "", ""); err == nil {
		t.Error("expected an error for a missing code")
	}
}
