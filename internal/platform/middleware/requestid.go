package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/frontdesk/internal/platform/gateway"
)

// RequestIDHeader is read from inbound requests and echoed on responses.
const RequestIDHeader = gateway.RequestIDHeader

// RequestID assigns every request an id, reusing the caller's when present.
// The id is stored under "request_id" and on the request context, where the
// gateway client picks it up for outbound calls.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set("request_id", rid)
			c.SetRequest(req.WithContext(gateway.ContextWithRequestID(req.Context(), rid)))
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
