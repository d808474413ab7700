package routes

import (
	"github.com/gin-gonic/gin"

	c "github.com/gymdesk/gymdesk/settings/controllers"
)

func RegisterSettingsRoutes(r *gin.Engine) {
	// Gym profile
	r.GET("/profile", c.GetProfile)
	r.PUT("/profile", c.UpdateProfile)

	// Opening hours
	r.GET("/hours", c.GetHours)
	r.PUT("/hours", c.UpdateHours)

	// Alert thresholds
	r.GET("/alerts/thresholds", c.GetThresholds)
	r.PUT("/alerts/thresholds", c.UpdateThresholds)

	// Staff
	r.GET("/staff", c.ListStaff)
	r.POST("/staff/invite", c.InviteStaff)
	r.PUT("/staff/:id", c.UpdateStaff)
	r.DELETE("/staff/:id", c.DeleteStaff)
}
