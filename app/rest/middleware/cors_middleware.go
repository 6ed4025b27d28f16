package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Browser clients authenticate with cookies, so AllowCredentials is on
// and the origin list must stay explicit; a wildcard origin would make
// the credentialed CORS grant meaningless.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://app.vyomtech.com",
	"https://*.vyomtech.com",
}

// CORS returns the cross-origin middleware for the given origins. An
// empty list falls back to the known first-party origins.
func CORS(origins ...string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			echo.GET,
			echo.POST,
			echo.PUT,
			echo.PATCH,
			echo.DELETE,
			echo.HEAD,
			echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"X-Tenant-ID",
			"X-Requested-With",
		},
		ExposeHeaders: []string{
			"X-Tenant-ID",
			"X-Rate-Limit-Remaining",
			"X-Rate-Limit-Reset",
		},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// DefaultCORS is CORS with the first-party origin list.
func DefaultCORS() echo.MiddlewareFunc {
	return CORS()
}
