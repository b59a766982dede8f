package routes

import (
	"internhub-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers the application pipeline routes. Reads are
// open to both sides; the service decides what each caller may see.
func RegisterApplicationRoutes(rg *gin.RouterGroup, appHandler handlers.ApplicationHandlerInterface, guards Guards) {
	apps := rg.Group("/applications")
	apps.Use(guards.Auth)
	{
		apps.POST("", guards.Student, appHandler.Submit)
		apps.GET("", appHandler.List)
		apps.GET("/:id", appHandler.Get)
		apps.GET("/:id/timeline", appHandler.Timeline)

		apps.POST("/bulk-update", guards.Partner, appHandler.BulkUpdate)
		apps.PATCH("/:id/status", guards.Partner, appHandler.UpdateStatus)
		apps.PATCH("/:id/rating", guards.Partner, appHandler.Rate)
		apps.POST("/:id/note", guards.Partner, appHandler.AddNote)
		apps.POST("/:id/schedule-interview", guards.Partner, appHandler.ScheduleInterview)
	}
}
