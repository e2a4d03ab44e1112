// FILE: internal/pkg/serverutils/visitor_middleware.go
package serverutils

import (
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/pkg/visitor"

	"github.com/gofiber/fiber/v2"
)

type VisitorCookieConfig struct {
	Name   string
	Secure bool
}

// VisitorMiddleware resolves the visitor id from the identity cookie, issues
// a new long-lived cookie on first contact and stores the id in Locals.
func VisitorMiddleware(cfg VisitorCookieConfig) fiber.Handler {
	if cfg.Name == "" {
		cfg.Name = visitor.DefaultCookieName
	}

	return func(ctx *fiber.Ctx) error {
		visitorId, issued := visitor.Resolve(ctx.Cookies(cfg.Name))
		if issued {
			ctx.Cookie(&fiber.Cookie{
				Name:     cfg.Name,
				Value:    visitorId,
				Path:     "/",
				MaxAge:   int(visitor.CookieMaxAge / time.Second),
				Expires:  time.Now().Add(visitor.CookieMaxAge),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		ctx.Locals(constant.VisitorIdLocalKey, visitorId)
		return ctx.Next()
	}
}

// VisitorID returns the id stored by VisitorMiddleware.
func VisitorID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(constant.VisitorIdLocalKey).(string)
	return id
}
