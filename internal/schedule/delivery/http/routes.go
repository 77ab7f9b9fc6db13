package http

import (
	"github.com/gin-gonic/gin"

	"schedule-proposer/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. Every route is rate limited.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.Use(mw.RateLimit())
	rg.POST("/proposals", h.Propose)
	rg.GET("/slots", h.AvailableSlots)
}
