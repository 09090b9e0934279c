package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const defaultAllowHeaders = "Content-Type, Authorization"

type corsGlobalMiddleware struct {
	allowOrigins     []string
	allowMethods     []string
	allowCredentials bool
	exposeHeaders    []string
	maxAge           string
}

func NewCORSGlobalMiddleware(
	allowOrigins []string,
	allowMethods []string,
	allowCredentials bool,
	exposeHeaders []string,
	maxAge string,
) Middleware {
	return &corsGlobalMiddleware{
		allowOrigins:     allowOrigins,
		allowMethods:     allowMethods,
		allowCredentials: allowCredentials,
		exposeHeaders:    exposeHeaders,
		maxAge:           maxAge,
	}
}

func (m *corsGlobalMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		allowOrigin, ok := m.resolveOrigin(origin)
		if !ok {
			return c.Next()
		}

		c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)
		if m.allowCredentials {
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		}
		if len(m.exposeHeaders) > 0 {
			c.Set(fiber.HeaderAccessControlExposeHeaders, strings.Join(m.exposeHeaders, ", "))
		}

		if c.Method() == fiber.MethodOptions && c.Get(fiber.HeaderAccessControlRequestMethod) != "" {
			return m.preflight(c)
		}
		return c.Next()
	}
}

// resolveOrigin returns the Access-Control-Allow-Origin value for origin. Credentials never go out with "*".
func (m *corsGlobalMiddleware) resolveOrigin(origin string) (string, bool) {
	wildcard := slices.Contains(m.allowOrigins, "*")
	if !wildcard && !slices.ContainsFunc(m.allowOrigins, func(o string) bool { return strings.EqualFold(o, origin) }) {
		return "", false
	}
	if wildcard && !m.allowCredentials {
		return "*", true
	}
	return origin, true
}

func (m *corsGlobalMiddleware) preflight(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowMethods, strings.Join(m.allowMethods, ", "))
	headers := c.Get(fiber.HeaderAccessControlRequestHeaders)
	if headers == "" {
		headers = defaultAllowHeaders
	}
	c.Set(fiber.HeaderAccessControlAllowHeaders, headers)
	if m.maxAge != "" {
		c.Set(fiber.HeaderAccessControlMaxAge, m.maxAge)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SplitOrigins turns the comma separated config value into the origin list.
func SplitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
