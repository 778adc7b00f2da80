// internal/controller/conversion_controller.go
package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/sterlingcover/leadgen-backend/internal/ads"
	"github.com/sterlingcover/leadgen-backend/internal/service"
)

// ConversionController forwards server-side conversion events to the ad
// platforms. Upstream errors are logged and returned with success:false
// but HTTP 200, so the calling UI flow is never interrupted.
type ConversionController struct {
	ConversionService *service.ConversionService
}

type conversionRequest struct {
	EventName string                 `json:"eventName"`
	EventData map[string]interface{} `json:"eventData"`
	UserData  ads.UserData           `json:"userData"`
}

type forwardFunc func(ctx context.Context, eventName string, eventData map[string]interface{}, user ads.UserData) error

func (c *ConversionController) FacebookConversions(w http.ResponseWriter, r *http.Request) {
	c.forward(w, r, "facebook", c.ConversionService.ForwardFacebook)
}

func (c *ConversionController) GoogleAdsConversions(w http.ResponseWriter, r *http.Request) {
	c.forward(w, r, "google ads", c.ConversionService.ForwardGoogle)
}

func (c *ConversionController) forward(w http.ResponseWriter, r *http.Request, platform string, send forwardFunc) {
	var body conversionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.EventName == "" {
		respondError(w, http.StatusBadRequest, "missing required field: eventName")
		return
	}

	if err := send(r.Context(), body.EventName, body.EventData, body.UserData); err != nil {
		log.Println("failed to forward", platform, "conversion:", err)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "conversion not forwarded: " + err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "conversion forwarded",
	})
}
