package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "retailpulse/config"
	U "retailpulse/util"
)

// scope constants.
const SCOPE_REQUEST_ID = "requestId"

const HEADER_REQUEST_ID = "X-Request-Id"

// SetScopeRequestID - Tags every request with an id for log correlation.
// An id sent by the caller is kept, otherwise a fresh one is issued.
func SetScopeRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.Request.Header.Get(HEADER_REQUEST_ID))
		if requestID == "" {
			requestID = U.GetUUID()
		}

		U.SetScope(c, SCOPE_REQUEST_ID, requestID)
		c.Writer.Header().Set(HEADER_REQUEST_ID, requestID)

		c.Next()
	}
}

// CustomCorsMiddleware for customised cors configuration based on conditions.
func CustomCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		corsConfig := cors.DefaultConfig()

		if C.IsDevelopment() {
			log.Info("Running in development..")
			corsConfig.AllowOrigins = []string{"http://localhost:8080", "http://localhost:3000", "http://localhost:8090"}
		} else if origins := C.GetConfig().AllowedOrigins; len(origins) > 0 {
			corsConfig.AllowOrigins = origins
		} else {
			corsConfig.AllowAllOrigins = true
		}

		// Applys custom cors and proceed.
		cors.New(corsConfig)(c)
		c.Next()
	}
}
