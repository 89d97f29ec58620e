package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/timing-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "timing-api-service",
		})
	})

	timingHandler := handler.NewTimingHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		recommendations := v1.Group("/recommendations")
		{
			// POST /api/v1/recommendations - Compute and store a recommendation
			recommendations.POST("", timingHandler.ComputeRecommendation)

			// POST /api/v1/recommendations/advisory - Classify submit-now vs wait vs schedule
			recommendations.POST("/advisory", timingHandler.ComputeAdvisory)
		}

		timing := v1.Group("/timing")
		{
			// GET /api/v1/timing - List timing records with filtering and pagination
			timing.GET("", timingHandler.ListTiming)

			// GET /api/v1/timing/:user_id/:job_id - Get one timing record
			timing.GET("/:user_id/:job_id", timingHandler.GetTiming)

			// POST /api/v1/timing/:user_id/:job_id/schedule - Schedule a future submission
			timing.POST("/:user_id/:job_id/schedule", timingHandler.ScheduleSubmission)

			// POST /api/v1/timing/:user_id/:job_id/cancel - Cancel a scheduled submission
			timing.POST("/:user_id/:job_id/cancel", timingHandler.CancelSchedule)

			// GET /api/v1/timing/:user_id/:job_id/submissions - Submission history and metrics
			timing.GET("/:user_id/:job_id/submissions", timingHandler.ListSubmissions)

			// POST /api/v1/timing/:user_id/:job_id/submissions - Record a manual submission
			timing.POST("/:user_id/:job_id/submissions", timingHandler.RecordSubmission)

			// POST /api/v1/timing/:user_id/:job_id/submissions/:index/response - Record a response
			timing.POST("/:user_id/:job_id/submissions/:index/response", timingHandler.RecordResponse)
		}
	}

	return r
}
