package routes

import (
	"internhub-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterStudentRoutes registers candidate discovery. Only approved partners
// may search, read resumes or keep a shortlist.
func RegisterStudentRoutes(rg *gin.RouterGroup, studentHandler handlers.StudentHandlerInterface, guards Guards) {
	students := rg.Group("/students")
	students.Use(guards.Auth, guards.ApprovedPartner)
	{
		students.GET("/discover", studentHandler.Discover)
		students.POST("/shortlist", studentHandler.Shortlist)
		students.GET("/shortlist", studentHandler.ListShortlist)
		students.DELETE("/shortlist/:uid", studentHandler.Unshortlist)
		students.GET("/:uid/profile", studentHandler.GetProfile)
		students.GET("/:uid/resume", studentHandler.GetResume)
	}
}
