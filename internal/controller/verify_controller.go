// internal/controller/verify_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/sterlingcover/leadgen-backend/internal/service"
)

// VerifyController serves the phone OTP endpoints.
type VerifyController struct {
	VerifyService *service.VerifyService
	LeadService   *service.LeadService
}

func (c *VerifyController) SendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To         string `json:"to"`
		ServiceSID string `json:"serviceSid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.To == "" {
		respondError(w, http.StatusBadRequest, "missing required field: to")
		return
	}

	result, err := c.VerifyService.SendOTP(r.Context(), body.To, body.ServiceSID)
	if err != nil {
		// SMS failures come back as 200 so the signup flow in the UI
		// is not interrupted.
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "failed to send verification code: " + err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "verification code sent",
		"verificationSid": result.VerificationSID,
	})
}

func (c *VerifyController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To              string `json:"to"`
		Code            string `json:"code"`
		ServiceSID      string `json:"serviceSid"`
		VerificationSID string `json:"verificationSid"`
		LeadID          string `json:"leadId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.To == "" {
		respondError(w, http.StatusBadRequest, "missing required field: to")
		return
	}
	if body.Code == "" {
		respondError(w, http.StatusBadRequest, "missing required field: code")
		return
	}

	result, err := c.VerifyService.CheckOTP(r.Context(), body.To, body.Code, body.ServiceSID)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "verification check failed: " + err.Error(),
		})
		return
	}

	if !result.Approved {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "incorrect verification code",
			"status":  result.Status,
		})
		return
	}

	// Flag the lead's phone as verified when the caller tells us which
	// lead this verification belongs to.
	if body.LeadID != "" {
		if err := c.LeadService.MarkPhoneVerified(body.LeadID); err != nil {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"message": "phone verified, but lead update failed: " + err.Error(),
				"status":  result.Status,
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "phone verified",
		"status":  result.Status,
	})
}
