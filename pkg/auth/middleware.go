package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lakshraina2/resume-scanner/pkg/kernel"
)

const contextKey = "auth_context"

// Context carries the authenticated identity through a request
type Context struct {
	UserID   kernel.UserID
	TenantID kernel.TenantID
	Email    string
}

// Middleware validates the Authorization bearer token and stores the
// auth context on the request
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return ErrRegistry.New(ErrMissingToken)
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			return ErrRegistry.New(ErrMissingToken).WithDetail("reason", "expected Bearer scheme")
		}

		claims, err := tokens.ValidateAccessToken(tokenString)
		if err != nil {
			return err
		}

		c.Locals(contextKey, &Context{
			UserID:   claims.UserID,
			TenantID: claims.TenantID,
			Email:    claims.Email,
		})
		return c.Next()
	}
}

// FromContext returns the auth context set by Middleware, if any
func FromContext(c *fiber.Ctx) (*Context, bool) {
	authCtx, ok := c.Locals(contextKey).(*Context)
	return authCtx, ok
}
