// internal/ads/facebook.go
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

const facebookGraphEndpoint = "https://graph.facebook.com/v18.0"

// FacebookClient forwards server-side events to the Facebook Conversions API.
type FacebookClient struct {
	pixelID     string
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

func NewFacebookClient(pixelID, accessToken string) *FacebookClient {
	return &FacebookClient{
		pixelID:     pixelID,
		accessToken: accessToken,
		baseURL:     facebookGraphEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type facebookEvent struct {
	EventName  string                 `json:"event_name"`
	EventTime  int64                  `json:"event_time"`
	UserData   map[string]string      `json:"user_data"`
	CustomData map[string]interface{} `json:"custom_data,omitempty"`
}

type facebookErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendEvent pushes one conversion event. Email and phone are hashed
// before transmission.
func (c *FacebookClient) SendEvent(ctx context.Context, eventName string, eventData map[string]interface{}, user UserData) error {
	if c.pixelID == "" || c.accessToken == "" {
		return fmt.Errorf("facebook conversions are not configured: missing pixel ID or access token")
	}

	userData := map[string]string{}
	if h := HashIdentifier(user.Email); h != "" {
		userData["em"] = h
	}
	if h := HashIdentifier(user.Phone); h != "" {
		userData["ph"] = h
	}

	payload := map[string]interface{}{
		"data": []facebookEvent{{
			EventName:  eventName,
			EventTime:  time.Now().Unix(),
			UserData:   userData,
			CustomData: eventData,
		}},
		"access_token": c.accessToken,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling event failed: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/events", c.baseURL, c.pixelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		var fbErr facebookErrorResponse
		if jsonErr := json.Unmarshal(body, &fbErr); jsonErr == nil && fbErr.Error.Message != "" {
			return fmt.Errorf("facebook error %d: %s", fbErr.Error.Code, fbErr.Error.Message)
		}
		return fmt.Errorf("facebook rejected event (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
