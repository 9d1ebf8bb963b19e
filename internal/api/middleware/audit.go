package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextIPAddress = "ip_address"
	ContextUserAgent = "user_agent"
	ContextRequestID = "request_id"
)

const HeaderRequestID = "X-Request-ID"

// AuditMiddleware records who is calling: client address, user agent and a
// request id, reusing the caller's X-Request-ID when present.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ipAddress := c.GetHeader("X-Forwarded-For")
		if ipAddress == "" {
			ipAddress = c.GetHeader("X-Real-IP")
		}
		if ipAddress == "" {
			ipAddress = c.ClientIP()
		}
		// Take the first of a comma-separated chain.
		if idx := strings.Index(ipAddress, ","); idx != -1 {
			ipAddress = strings.TrimSpace(ipAddress[:idx])
		}

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ContextIPAddress, ipAddress)
		c.Set(ContextUserAgent, c.GetHeader("User-Agent"))
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}

func GetIPAddress(c *gin.Context) string {
	return getString(c, ContextIPAddress)
}

func GetUserAgent(c *gin.Context) string {
	return getString(c, ContextUserAgent)
}

func GetRequestID(c *gin.Context) string {
	return getString(c, ContextRequestID)
}

func getString(c *gin.Context, key string) string {
	val, exists := c.Get(key)
	if !exists {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
