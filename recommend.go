package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// createRecommendation runs the whole pipeline for one form submission:
// predict the diet category, derive the plans, render and store the report,
// and echo the reminder when one was sent.
// POST /api/recommendations.
//
// A report failure is reported in report_error; the plan is still returned.
func (h *Handler) createRecommendation(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	profile := req.userProfile
	bmi := profile.bmi()

	category, err := h.predictor.Predict(c.Request.Context(), profile, bmi)
	if err != nil {
		if errors.Is(err, errUnknownCategory) {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("prediction failed", "handler", "createRecommendation", "error", err)
		apiError(c, http.StatusInternalServerError, "prediction failed")
		return
	}

	rec := derivePlan(category, profile)
	resp := recommendationResponse{BMI: bmi, recommendation: rec}

	id, err := h.saveReport(c.Request.Context(), newReport(profile, bmi, rec))
	if err != nil {
		h.log.Warn("report generation failed", "handler", "createRecommendation", "error", err)
		resp.ReportError = "report generation failed"
	} else {
		resp.ReportID = id
		resp.ReportURL = "/api/reports/" + id
	}

	if req.Reminder != nil {
		status := newReminderStatus(h.now(), *req.Reminder)
		resp.Reminder = &status
	}

	h.log.Debug("recommendation served", "diet_type", rec.DietType, "calories", rec.Calories, "report_id", resp.ReportID)
	c.JSON(http.StatusOK, resp)
}
