// internal/verify/twilio.go
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioVerifyEndpoint = "https://verify.twilio.com/v2"

// TwilioProvider talks to the Twilio Verify API over HTTP.
type TwilioProvider struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
}

func NewTwilioProvider(accountSID, authToken string) *TwilioProvider {
	return &TwilioProvider{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    twilioVerifyEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type twilioVerificationResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type twilioErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (p *TwilioProvider) StartVerification(ctx context.Context, to, serviceSID string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("Channel", "sms")

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", p.baseURL, serviceSID)
	res, err := p.post(ctx, endpoint, form)
	if err != nil {
		return "", err
	}
	return res.SID, nil
}

func (p *TwilioProvider) CheckVerification(ctx context.Context, to, code, serviceSID string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", p.baseURL, serviceSID)
	res, err := p.post(ctx, endpoint, form)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}

func (p *TwilioProvider) post(ctx context.Context, endpoint string, form url.Values) (*twilioVerificationResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("request creation error: %w", err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var twErr twilioErrorResponse
		if jsonErr := json.Unmarshal(body, &twErr); jsonErr == nil && twErr.Message != "" {
			return nil, fmt.Errorf("twilio error %d: %s", twErr.Code, twErr.Message)
		}
		return nil, fmt.Errorf("twilio rejected request (status %d): %s", resp.StatusCode, string(body))
	}

	var result twilioVerificationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("response decoding error: %w", err)
	}
	return &result, nil
}

var _ Provider = (*TwilioProvider)(nil)
