package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loghive/loghive/internal/metrics"
	"github.com/loghive/loghive/internal/response"
)

const tenantContextKey = "loghive.tenant"

// Middleware extracts the bearer credential from the Authorization header,
// resolves it against the registry, and stores the tenant on the request
// context. Requests with no resolvable credential get a generic 401.
func Middleware(reg *Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			tenant, err := reg.Authenticate(token)
			if err != nil {
				metrics.AuthFailures.Inc()
				return response.Unauthorized(c, "invalid credential", "credential matches no registered tenant")
			}
			c.Set(tenantContextKey, tenant)
			return next(c)
		}
	}
}

// TenantFromContext returns the tenant set by Middleware, or "" if the
// request did not pass through it.
func TenantFromContext(c echo.Context) string {
	tenant, _ := c.Get(tenantContextKey).(string)
	return tenant
}

// bearerToken returns the token portion of "Bearer <token>", or "" when the
// header is absent or uses another scheme.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
