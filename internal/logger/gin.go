package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware 使用默认日志器记录 HTTP 访问日志，替代 gin.Logger()
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		z := defaultLogger.GetZapLogger()
		switch {
		case c.Writer.Status() >= 500:
			z.Error("request", fields...)
		case c.Writer.Status() >= 400:
			z.Warn("request", fields...)
		default:
			z.Info("request", fields...)
		}
	}
}
