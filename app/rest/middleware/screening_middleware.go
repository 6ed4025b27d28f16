package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"session-service/app/utils/security"
)

// Screening rejects requests whose path, query, or user agent match known
// attack signatures, and drops traffic from sources the screener has
// already escalated past the blocking threshold.
func Screening(screener *security.Screener) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			target := req.URL.Path
			if req.URL.RawQuery != "" {
				target += "?" + req.URL.RawQuery
			}

			ip := c.RealIP()
			if !screener.Inspect(ip, req.UserAgent(), target, req.URL.RawQuery) {
				return echo.NewHTTPError(http.StatusForbidden, "request rejected")
			}

			err := next(c)

			// failed logins feed the brute-force escalation
			if req.URL.Path == "/v1/auth/login" && responseStatus(c, err) == http.StatusUnauthorized {
				screener.RecordFailure(ip)
			}

			return err
		}
	}
}

func responseStatus(c echo.Context, err error) int {
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code
		}
		return http.StatusInternalServerError
	}
	return c.Response().Status
}
