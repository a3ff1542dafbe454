package logger

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware is an Echo middleware that injects a request ID
// into the request context, checking for an existing X-Request-ID
// header and generating a new UUID otherwise. Handlers that enqueue a
// generation job read the ID back out with ExtractRequestID and carry
// it into the job payload, so a worker log line can be traced back to
// the HTTP request that triggered it.
//
// Example usage:
//
//	e.Use(logger.RequestIDMiddleware())
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set("X-Request-ID", requestID)

			ctx := WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
