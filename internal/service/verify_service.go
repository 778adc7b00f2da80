// internal/service/verify_service.go
package service

import (
	"context"
	"fmt"

	"github.com/sterlingcover/leadgen-backend/internal/verify"
)

type VerifyService struct {
	Provider verify.Provider
}

type SendOTPResult struct {
	VerificationSID string
}

type CheckOTPResult struct {
	Approved bool
	Status   string
}

func (s *VerifyService) SendOTP(ctx context.Context, to, serviceSID string) (*SendOTPResult, error) {
	if to == "" {
		return nil, fmt.Errorf("missing phone number")
	}

	sid, err := s.Provider.StartVerification(ctx, to, serviceSID)
	if err != nil {
		return nil, err
	}
	return &SendOTPResult{VerificationSID: sid}, nil
}

func (s *VerifyService) CheckOTP(ctx context.Context, to, code, serviceSID string) (*CheckOTPResult, error) {
	if code == "" {
		return nil, fmt.Errorf("missing verification code")
	}

	status, err := s.Provider.CheckVerification(ctx, to, code, serviceSID)
	if err != nil {
		return nil, err
	}

	return &CheckOTPResult{
		Approved: status == "approved",
		Status:   status,
	}, nil
}
