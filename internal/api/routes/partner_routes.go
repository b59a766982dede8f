package routes

import (
	"internhub-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPartnerRoutes registers partner self-service and admin review routes.
func RegisterPartnerRoutes(rg *gin.RouterGroup, partnerHandler handlers.PartnerHandlerInterface, guards Guards) {
	partners := rg.Group("/partners")
	partners.Use(guards.Auth)
	{
		// Any role may register; the caller becomes a partner.
		partners.POST("/register", partnerHandler.Register)

		self := partners.Group("", guards.Partner)
		self.GET("/profile", partnerHandler.GetProfile)
		self.PUT("/profile", partnerHandler.UpdateProfile)
		self.GET("/stats", partnerHandler.GetStats)
		self.GET("/verification-status", partnerHandler.GetVerificationStatus)

		admin := partners.Group("/admin", guards.Admin)
		admin.GET("/all", partnerHandler.ListPartners)
		admin.PATCH("/:id/verify", partnerHandler.VerifyPartner)
		admin.PATCH("/:id/suspend", partnerHandler.SuspendPartner)
	}
}
