package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	C "retailpulse/config"
	"retailpulse/profilestore"
	U "retailpulse/util"
)

// StatusHandler - Uptime payload for load balancer and pager checks.
func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"app_name":        C.GetConfig().AppName,
		"env":             C.GetConfig().Env,
		"profiles_cached": profilestore.GetStore().Count(),
		"time":            U.TimeNowZ().Format(U.DATETIME_FORMAT_DB),
	})
}
