package middleware

import (
	"time"

	"fupa/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one access log line per request to the file loggers.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s %d %s session=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString("sessionId")}
		if status >= 500 {
			utils.LogError(line, args...)
			return
		}
		utils.LogInfo(line, args...)
	}
}
