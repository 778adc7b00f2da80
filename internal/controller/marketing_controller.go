// internal/controller/marketing_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/sterlingcover/leadgen-backend/internal/service"
)

// MarketingController serves the unsubscribe and campaign-send surface.
type MarketingController struct {
	CampaignService    *service.CampaignService
	UnsubscribeService *service.UnsubscribeService
}

// Unsubscribe handles both the link from an email footer (GET with query
// params) and the programmatic call (POST with a JSON body).
func (c *MarketingController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var params service.UnsubscribeParams

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		params.Email = q.Get("email")
		params.Name = q.Get("name")
		params.Reason = q.Get("reason")
		params.Category = q.Get("category_name")
		if params.Category == "" {
			params.Category = q.Get("category_id")
		}
	} else {
		var body struct {
			Email        string `json:"email"`
			Name         string `json:"name"`
			Reason       string `json:"reason"`
			CategoryID   string `json:"category_id"`
			CategoryName string `json:"category_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		params.Email = body.Email
		params.Name = body.Name
		params.Reason = body.Reason
		params.Category = body.CategoryName
		if params.Category == "" {
			params.Category = body.CategoryID
		}
	}

	if params.Email == "" {
		respondError(w, http.StatusBadRequest, "missing required field: email")
		return
	}

	params.IPAddress = clientIP(r)
	params.UserAgent = r.UserAgent()

	outcome, err := c.UnsubscribeService.Unsubscribe(params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record unsubscribe: "+err.Error())
		return
	}

	if outcome.AlreadyUnsubscribed {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":             true,
			"message":             "already unsubscribed",
			"alreadyUnsubscribed": true,
			"data":                outcome.Record,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "unsubscribed successfully",
		"data":    outcome.Record,
	})
}

// SendCampaign dispatches a campaign synchronously and returns the
// aggregate delivery outcome.
func (c *MarketingController) SendCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID      int                      `json:"campaignId"`
		TemplateContent string                   `json:"templateContent"`
		Subject         string                   `json:"subject"`
		FromEmail       string                   `json:"fromEmail"`
		FromName        string                   `json:"fromName"`
		Recipients      []service.RecipientInput `json:"recipients"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.CampaignID == 0 {
		respondError(w, http.StatusBadRequest, "missing required field: campaignId")
		return
	}
	if body.TemplateContent == "" {
		respondError(w, http.StatusBadRequest, "missing required field: templateContent")
		return
	}
	if len(body.Recipients) == 0 {
		respondError(w, http.StatusBadRequest, "missing required field: recipients")
		return
	}

	result, err := c.CampaignService.SendCampaign(r.Context(), service.SendCampaignRequest{
		CampaignID:      body.CampaignID,
		TemplateContent: body.TemplateContent,
		Subject:         body.Subject,
		FromEmail:       body.FromEmail,
		FromName:        body.FromName,
		Recipients:      body.Recipients,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"results": result,
	})
}
