package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/timing-be/internal/api/dto"
	"github.com/applytrack/timing-be/internal/api/storage"
	"github.com/applytrack/timing-be/internal/timing/domain"
)

// GetTiming handles GET /api/v1/timing/:user_id/:job_id
func (h *TimingHandler) GetTiming(c *gin.Context) {
	userID, jobID := c.Param("user_id"), c.Param("job_id")

	record, err := h.store.GetRecord(c.Request.Context(), userID, jobID)
	if err != nil {
		h.respondStoreError(c, err, "Failed to get timing record")
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListTiming handles GET /api/v1/timing
// Lists timing records with optional filtering and cursor pagination
func (h *TimingHandler) ListTiming(c *gin.Context) {
	var req dto.ListTimingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeRecordCursor(req.Cursor)
	if err != nil {
		h.logger.Error("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	filter := storage.RecordFilter{
		UserID:   req.UserID,
		Industry: req.Industry,
		PageSize: req.PageSize,
		Cursor:   cursor,
	}

	records, err := h.store.ListRecords(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list timing records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list timing records",
		})
		return
	}

	// One extra row was fetched to detect whether more results exist
	hasMore := len(records) > req.PageSize
	if hasMore {
		records = records[:req.PageSize]
	}

	var nextCursor string
	if hasMore {
		last := records[len(records)-1]
		nextCursor = EncodeRecordCursor(&storage.RecordCursor{
			CreatedAt: last.CreatedAt,
			JobID:     last.JobID,
		})
	}

	c.JSON(http.StatusOK, dto.ListTimingResponse{
		Records:    records,
		NextCursor: nextCursor,
	})
}

// ScheduleSubmission handles POST /api/v1/timing/:user_id/:job_id/schedule
// A schedule request for a pair that has no timing record yet creates one,
// the same way the first recommendation request does.
func (h *TimingHandler) ScheduleSubmission(c *gin.Context) {
	userID, jobID := c.Param("user_id"), c.Param("job_id")

	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	op := func(record *domain.TimingRecord, now time.Time) error {
		return record.ScheduleSubmission(req.ScheduledTime, req.AutoSubmit, now)
	}

	record, err := h.store.GetRecord(c.Request.Context(), userID, jobID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			h.respondStoreError(c, err, "Failed to get timing record")
			return
		}

		now := time.Now().UTC()
		record = &domain.TimingRecord{
			UserID:    userID,
			JobID:     jobID,
			CreatedAt: now,
		}
		if err := op(record, now); err != nil {
			h.respondDomainError(c, err)
			return
		}
		record.UpdatedAt = now

		if err := h.store.UpsertRecord(c.Request.Context(), record); err != nil {
			h.respondStoreError(c, err, "Failed to store timing record")
			return
		}

		c.JSON(http.StatusOK, record)
		return
	}

	h.applyMutation(c, record, op)
}

// CancelSchedule handles POST /api/v1/timing/:user_id/:job_id/cancel
func (h *TimingHandler) CancelSchedule(c *gin.Context) {
	userID, jobID := c.Param("user_id"), c.Param("job_id")

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	h.mutateRecord(c, userID, jobID, func(record *domain.TimingRecord, now time.Time) error {
		return record.CancelScheduledSubmission(req.Reason, now)
	})
}

// RecordSubmission handles POST /api/v1/timing/:user_id/:job_id/submissions
func (h *TimingHandler) RecordSubmission(c *gin.Context) {
	userID, jobID := c.Param("user_id"), c.Param("job_id")

	var req dto.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	h.mutateRecord(c, userID, jobID, func(record *domain.TimingRecord, now time.Time) error {
		submittedAt := now
		if req.SubmittedAt != nil {
			submittedAt = *req.SubmittedAt
		}
		record.RecordSubmission(domain.SubmissionEntry{
			SubmittedAt:            submittedAt,
			FollowedRecommendation: req.FollowedRecommendation,
		}, now)
		return nil
	})
}

// RecordResponse handles POST /api/v1/timing/:user_id/:job_id/submissions/:index/response
func (h *TimingHandler) RecordResponse(c *gin.Context) {
	userID, jobID := c.Param("user_id"), c.Param("job_id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "index must be an integer",
		})
		return
	}

	var req dto.ResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	h.mutateRecord(c, userID, jobID, func(record *domain.TimingRecord, now time.Time) error {
		respondedAt := now
		if req.RespondedAt != nil {
			respondedAt = *req.RespondedAt
		}
		return record.RecordResponse(index, req.ResponseType, respondedAt, now)
	})
}

// ListSubmissions handles GET /api/v1/timing/:user_id/:job_id/submissions
func (h *TimingHandler) ListSubmissions(c *gin.Context) {
	userID, jobID := c.Param("user_id"), c.Param("job_id")

	record, err := h.store.GetRecord(c.Request.Context(), userID, jobID)
	if err != nil {
		h.respondStoreError(c, err, "Failed to get timing record")
		return
	}

	submissions := record.SubmissionHistory
	if submissions == nil {
		submissions = []domain.SubmissionEntry{}
	}

	c.JSON(http.StatusOK, dto.SubmissionsResponse{
		Submissions: submissions,
		Metrics:     record.Metrics,
	})
}

// mutateRecord loads the record, applies the operation, and writes it back
// guarded by the schedule status read. A concurrent transition fails the
// write with a conflict instead of overwriting it.
func (h *TimingHandler) mutateRecord(c *gin.Context, userID, jobID string, op func(*domain.TimingRecord, time.Time) error) {
	record, err := h.store.GetRecord(c.Request.Context(), userID, jobID)
	if err != nil {
		h.respondStoreError(c, err, "Failed to get timing record")
		return
	}

	h.applyMutation(c, record, op)
}

// applyMutation applies the operation to an already-loaded record and
// persists it guarded by the schedule status it was loaded with.
func (h *TimingHandler) applyMutation(c *gin.Context, record *domain.TimingRecord, op func(*domain.TimingRecord, time.Time) error) {
	prevStatus := record.ScheduledSubmission.Status
	now := time.Now().UTC()

	if err := op(record, now); err != nil {
		h.respondDomainError(c, err)
		return
	}
	record.UpdatedAt = now

	if err := h.store.UpdateRecordCAS(c.Request.Context(), record, prevStatus); err != nil {
		h.respondStoreError(c, err, "Failed to update timing record")
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *TimingHandler) respondStoreError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Timing record not found",
		})
	case errors.Is(err, domain.ErrScheduleConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Timing record was modified concurrently",
		})
	default:
		h.logger.Error(message, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": message,
		})
	}
}

func (h *TimingHandler) respondDomainError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
		})
	case errors.Is(err, domain.ErrScheduleConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Schedule is not in a cancellable state",
		})
	case errors.Is(err, domain.ErrHistoryIndexOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Submission index out of range",
		})
	case errors.Is(err, domain.ErrResponseAlreadyRecorded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Response already recorded for this submission",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to apply operation",
		})
	}
}
