// internal/ads/google.go
package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const googleAdsEndpoint = "https://googleads.googleapis.com/v16"

// GoogleAdsClient uploads click conversions to the Google Ads API.
type GoogleAdsClient struct {
	customerID     string
	conversionID   string
	developerToken string
	baseURL        string
	httpClient     *http.Client
}

func NewGoogleAdsClient(customerID, conversionID, developerToken string) *GoogleAdsClient {
	return &GoogleAdsClient{
		customerID:     customerID,
		conversionID:   conversionID,
		developerToken: developerToken,
		baseURL:        googleAdsEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type googleConversion struct {
	ConversionAction   string                 `json:"conversionAction"`
	ConversionDateTime string                 `json:"conversionDateTime"`
	UserIdentifiers    []map[string]string    `json:"userIdentifiers,omitempty"`
	CustomVariables    map[string]interface{} `json:"customVariables,omitempty"`
}

// SendEvent uploads one conversion. Email and phone are hashed before
// transmission.
func (c *GoogleAdsClient) SendEvent(ctx context.Context, eventName string, eventData map[string]interface{}, user UserData) error {
	if c.customerID == "" || c.developerToken == "" {
		return fmt.Errorf("google ads conversions are not configured: missing customer ID or developer token")
	}

	identifiers := []map[string]string{}
	if h := HashIdentifier(user.Email); h != "" {
		identifiers = append(identifiers, map[string]string{"hashedEmail": h})
	}
	if h := HashIdentifier(user.Phone); h != "" {
		identifiers = append(identifiers, map[string]string{"hashedPhoneNumber": h})
	}

	customVars := map[string]interface{}{"event_name": eventName}
	for k, v := range eventData {
		customVars[k] = v
	}

	payload := map[string]interface{}{
		"conversions": []googleConversion{{
			ConversionAction:   fmt.Sprintf("customers/%s/conversionActions/%s", c.customerID, c.conversionID),
			ConversionDateTime: time.Now().Format("2006-01-02 15:04:05-07:00"),
			UserIdentifiers:    identifiers,
			CustomVariables:    customVars,
		}},
		"partialFailure": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling conversion failed: %w", err)
	}

	endpoint := fmt.Sprintf("%s/customers/%s:uploadClickConversions", c.baseURL, c.customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.developerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("google ads rejected conversion (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
