// internal/controller/lead_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	appErrors "github.com/sterlingcover/leadgen-backend/internal/errors"
	"github.com/sterlingcover/leadgen-backend/internal/service"
)

type LeadController struct {
	LeadService *service.LeadService
}

func (c *LeadController) CreateLead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		ProductInterest string `json:"product_interest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Email == "" {
		respondError(w, http.StatusBadRequest, "missing required field: email")
		return
	}
	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "missing required field: name")
		return
	}

	lead, err := c.LeadService.CreateLead(service.CreateLeadParams{
		Name:            body.Name,
		Email:           body.Email,
		Phone:           body.Phone,
		ProductInterest: body.ProductInterest,
		IPAddress:       clientIP(r),
		UserAgent:       r.UserAgent(),
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create lead: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    lead,
	})
}

func (c *LeadController) ListLeads(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	leads, pagination, err := c.LeadService.ListLeads(page, pageSize, status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch leads: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       leads,
		"pagination": pagination,
	})
}

func (c *LeadController) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Status == "" {
		respondError(w, http.StatusBadRequest, "missing required field: status")
		return
	}

	if err := c.LeadService.UpdateStatus(publicID, body.Status); err != nil {
		if _, ok := err.(*appErrors.ErrLeadNotFound); ok {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update lead: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "lead updated",
	})
}
