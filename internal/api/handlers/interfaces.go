// internal/api/handlers/interfaces.go
package handlers

import "github.com/gin-gonic/gin"

// PartnerHandlerInterface defines the methods needed by the partner routes.
type PartnerHandlerInterface interface {
	Register(c *gin.Context)
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	GetStats(c *gin.Context)
	GetVerificationStatus(c *gin.Context)
	ListPartners(c *gin.Context)
	VerifyPartner(c *gin.Context)
	SuspendPartner(c *gin.Context)
}

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	GetJob(c *gin.Context)
	ListPublicJobs(c *gin.Context)
	ListMyJobs(c *gin.Context)
	UpdateJob(c *gin.Context)
	UpdateJobStatus(c *gin.Context)
	DeleteJob(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Submit(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Timeline(c *gin.Context)
	UpdateStatus(c *gin.Context)
	BulkUpdate(c *gin.Context)
	AddNote(c *gin.Context)
	Rate(c *gin.Context)
	ScheduleInterview(c *gin.Context)
}

// StudentHandlerInterface defines the methods needed by the discovery routes.
type StudentHandlerInterface interface {
	Discover(c *gin.Context)
	GetProfile(c *gin.Context)
	GetResume(c *gin.Context)
	Shortlist(c *gin.Context)
	ListShortlist(c *gin.Context)
	Unshortlist(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var (
	_ PartnerHandlerInterface     = (*PartnerHandler)(nil)
	_ JobHandlerInterface         = (*JobHandler)(nil)
	_ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
	_ StudentHandlerInterface     = (*StudentHandler)(nil)
)
