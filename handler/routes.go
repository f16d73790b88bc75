package handler

import (
	"github.com/gin-gonic/gin"

	mid "retailpulse/middleware"
)

func InitRoutes(r *gin.Engine) {
	r.Use(mid.CustomCors())
	r.Use(mid.SetScopeRequestID())

	r.GET("/status", StatusHandler)

	r.POST("/api/process-data", ProcessDataHandler)
	r.GET("/api/customer/:customer_id/recommendation", GetRecommendationHandler)
	r.GET("/api/segments/statistics", GetSegmentStatisticsHandler)
}
