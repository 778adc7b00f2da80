// internal/verify/provider.go
package verify

import "context"

// Provider abstracts the external phone verification service.
type Provider interface {
	// StartVerification sends an OTP to the given number and returns the
	// provider's verification SID.
	StartVerification(ctx context.Context, to, serviceSID string) (string, error)

	// CheckVerification checks a submitted code. Status is "approved" when
	// the code matches, "failed" otherwise.
	CheckVerification(ctx context.Context, to, code, serviceSID string) (string, error)
}
