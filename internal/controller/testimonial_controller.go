// internal/controller/testimonial_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/sterlingcover/leadgen-backend/internal/model"
	"github.com/sterlingcover/leadgen-backend/internal/repository"
)

type TestimonialController struct {
	TestimonialRepo repository.TestimonialRepositoryInterface
}

func (c *TestimonialController) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Author  string `json:"author"`
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Author == "" {
		respondError(w, http.StatusBadRequest, "missing required field: author")
		return
	}
	if body.Content == "" {
		respondError(w, http.StatusBadRequest, "missing required field: content")
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	// New testimonials wait for approval before showing on the site.
	t := &model.Testimonial{
		Author:  body.Author,
		Content: body.Content,
		Rating:  body.Rating,
	}
	if err := c.TestimonialRepo.Create(t); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create testimonial: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    t,
	})
}

func (c *TestimonialController) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := c.TestimonialRepo.ListApproved()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch testimonials: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": testimonials,
	})
}
