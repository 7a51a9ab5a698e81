package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceIDKey = "trace_id"

// Logger assigns every request a trace id and logs method, path, status and
// latency once the handler chain finishes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.NewString()
		c.Set(TraceIDKey, traceID)

		start := time.Now()
		c.Next()

		slog.Info("request",
			slog.String("trace_id", traceID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// GetTraceID returns the request's trace id for handler-side logging.
func GetTraceID(c *gin.Context) string {
	traceID, ok := c.Get(TraceIDKey)
	if !ok {
		return ""
	}
	s, _ := traceID.(string)
	return s
}
