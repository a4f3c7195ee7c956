package serverutils

import (
	"net/url"
	"strings"

	"civicmap-be/internal/service"
	"civicmap-be/pkg/audit"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Prefixes that bypass the visibility check entirely. API calls carry
// their own auth, asset requests are not navigations, and websocket
// upgrades are established from pages that already passed the gate.
var gateExemptPrefixes = []string{
	"/api/",
	"/assets/",
	"/static/",
	"/ws",
	"/healthz",
	"/favicon.ico",
}

// VisibilityMiddleware runs the route gate on every page navigation.
// Denied visitors land back on the home page; the hidden system's
// display name rides along so the client can explain the redirect.
func VisibilityMiddleware(visibility service.IVisibilityService, trail *audit.Trail) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		path := ctx.Path()
		if isGateExempt(path) {
			return ctx.Next()
		}

		userID := uuid.Nil
		if raw, ok := ctx.Locals("user_id").(string); ok {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = parsed
			}
		}

		if visibility.IsRouteVisible(ctx.Context(), path, userID) {
			return ctx.Next()
		}

		rec := audit.DenyRecord{Path: path}
		if userID != uuid.Nil {
			rec.UserID = userID.String()
		}

		redirect := "/"
		if sys := visibility.SystemForRoute(ctx.Context(), path); sys != nil {
			rec.SystemKey = sys.Key
			rec.SystemName = sys.Name
			redirect = "/?hidden_system=" + url.QueryEscape(sys.Name)
		}
		if trail != nil {
			trail.RecordDenial(rec)
		}
		return ctx.Redirect(redirect, fiber.StatusFound)
	}
}

func isGateExempt(path string) bool {
	for _, prefix := range gateExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
