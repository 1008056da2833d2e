package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every call with an id so a dispatch flow (signup, report,
// accept, complete) can be traced across log lines. A client-supplied
// X-Request-Id is honored, otherwise a fresh uuid is issued; either way the
// id is stored in the gin context and echoed back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		// caller id is set by the auth middleware during Next
		caller := c.GetString("user_id")
		if caller == "" {
			caller = "anonymous"
		}
		log.Printf("dispatch: %s %s -> %d caller=%s rid=%s took=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			caller, rid, time.Since(start))
	}
}
