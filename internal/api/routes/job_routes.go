package routes

import (
	"internhub-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings. Listing and
// reading are public; everything else needs a partner token.
func RegisterJobRoutes(rg *gin.RouterGroup, jobHandler handlers.JobHandlerInterface, guards Guards) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListPublicJobs)
		jobs.GET("/public/active", jobHandler.ListPublicJobs)
		jobs.GET("/:id", guards.OptionalAuth, jobHandler.GetJob)
	}

	partner := rg.Group("/jobs", guards.Auth, guards.Partner)
	{
		partner.POST("", jobHandler.CreateJob)
		partner.GET("/partner/my-jobs", jobHandler.ListMyJobs)
		partner.PUT("/:id", jobHandler.UpdateJob)
		partner.PATCH("/:id/status", jobHandler.UpdateJobStatus)
		partner.DELETE("/:id", jobHandler.DeleteJob)
	}
}
