// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	appErrors "github.com/sterlingcover/leadgen-backend/internal/errors"
	"github.com/sterlingcover/leadgen-backend/internal/service"
)

// CampaignController serves stored-campaign CRUD and the async send path.
type CampaignController struct {
	CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string `json:"name"`
		Subject      string `json:"subject"`
		FromEmail    string `json:"from_email"`
		FromName     string `json:"from_name"`
		BodyTemplate string `json:"body_template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "missing required field: name")
		return
	}
	if body.BodyTemplate == "" {
		respondError(w, http.StatusBadRequest, "missing required field: body_template")
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(body.Name, body.Subject, body.FromEmail, body.FromName, body.BodyTemplate)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}

	details, err := c.CampaignService.GetCampaignDetailsWithStats(id)
	if err != nil {
		if _, ok := err.(*appErrors.ErrCampaignNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to fetch campaign: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// SendCampaignAsync enqueues the campaign; the worker process performs
// the actual dispatch to all subscribed contacts.
func (c *CampaignController) SendCampaignAsync(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}

	if err := c.CampaignService.EnqueueCampaign(id); err != nil {
		if _, ok := err.(*appErrors.ErrCampaignNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"campaign_id": id,
		"message":     "campaign queued for sending",
	})
}
