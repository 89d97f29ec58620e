package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/timing-be/internal/api/dto"
	"github.com/applytrack/timing-be/internal/timing/domain"
	"github.com/applytrack/timing-be/internal/timing/engine"
)

// ComputeRecommendation handles POST /api/v1/recommendations
// Computes a submission-time recommendation and stores it on the timing
// record for (user_id, job_id), creating the record if needed.
func (h *TimingHandler) ComputeRecommendation(c *gin.Context) {
	var req dto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if req.JobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id is required",
		})
		return
	}

	rec := h.engine.Recommend(c.Request.Context(), jobData(req), userData(req))

	now := time.Now().UTC()
	record, err := h.store.GetRecord(c.Request.Context(), req.UserID, req.JobID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			h.logger.Error("Failed to load timing record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load timing record",
			})
			return
		}
		record = &domain.TimingRecord{
			UserID:    req.UserID,
			JobID:     req.JobID,
			CreatedAt: now,
		}
	}

	record.Industry = req.Industry
	record.CompanySize = req.CompanySize
	record.Location = req.Location
	record.Timezone = req.JobTimezone
	record.IsRemote = req.IsRemote
	record.CurrentRecommendation = &rec
	record.UpdatedAt = now

	if err := h.store.UpsertRecord(c.Request.Context(), record); err != nil {
		h.logger.Error("Failed to store timing record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store timing record",
		})
		return
	}

	h.logger.Info("Recommendation computed",
		slog.String("user_id", req.UserID),
		slog.String("job_id", req.JobID),
		slog.Time("recommended_time", rec.RecommendedTime),
		slog.Int("confidence", rec.Confidence),
	)

	c.JSON(http.StatusOK, record)
}

// ComputeAdvisory handles POST /api/v1/recommendations/advisory
// Classifies how far the optimal submission window is from now.
func (h *TimingHandler) ComputeAdvisory(c *gin.Context) {
	var req dto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	advisory := h.engine.Advise(c.Request.Context(), jobData(req), userData(req))

	c.JSON(http.StatusOK, advisory)
}

func jobData(req dto.RecommendationRequest) engine.JobData {
	return engine.JobData{
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Location:    req.Location,
		Timezone:    req.JobTimezone,
		IsRemote:    req.IsRemote,
	}
}

func userData(req dto.RecommendationRequest) engine.UserData {
	return engine.UserData{
		UserID:   req.UserID,
		Timezone: req.UserTimezone,
	}
}
