// The settings service is a small standalone API for the admin settings
// screens: gym profile, opening hours, alert thresholds, and staff.
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/gymdesk/gymdesk/settings/routes"
)

func main() {
	r := gin.Default()
	routes.RegisterSettingsRoutes(r)
	log.Println("Settings API running on :8081")
	_ = r.Run(":8081")
}
