// Package gate decides, once per inbound page navigation, whether a path
// is servable given the current system/route visibility flags and the
// requester's entitlements. The gate is stateless per call and never
// propagates errors: every call returns a definitive boolean.
package gate

import (
	"context"
	"strings"

	"civicmap-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// RuleSource returns the visibility rule matching a path. Implementations
// should resolve the route row (with its owning system) and the
// system-prefix fallback in a single round trip; the gate runs on the
// hot path of every navigation.
type RuleSource interface {
	RuleForPath(ctx context.Context, path string) (Rule, error)
}

// EntitlementChecker reports whether a user holds a named capability.
type EntitlementChecker interface {
	HasFeature(ctx context.Context, userID uuid.UUID, feature string) (bool, error)
}

type Options struct {
	// AdminPrefix is always visible so administrators cannot lock
	// themselves out of the tool that manages these flags. The admin
	// role itself is established by the calling layer.
	AdminPrefix string

	// DevMode switches the not-provisioned failure branch from deny to
	// allow. Production fails closed on every store error.
	DevMode bool
}

type Gate struct {
	rules        RuleSource
	entitlements EntitlementChecker
	opts         Options
	log          logger.ILogger
}

func New(rules RuleSource, entitlements EntitlementChecker, opts Options, log logger.ILogger) *Gate {
	if opts.AdminPrefix == "" {
		opts.AdminPrefix = "/admin"
	}
	return &Gate{
		rules:        rules,
		entitlements: entitlements,
		opts:         opts,
		log:          log,
	}
}

// IsRouteVisible decides whether path is servable for the given user.
// userID == uuid.Nil means anonymous; anonymous requests hold no
// capability. The call is a pure read with no side effects.
func (g *Gate) IsRouteVisible(ctx context.Context, path string, userID uuid.UUID) bool {
	if strings.HasPrefix(path, g.opts.AdminPrefix) {
		return true
	}

	rule, err := g.rules.RuleForPath(ctx, path)
	if err != nil {
		return g.failurePolicy(path, err)
	}

	verdict := rule.Resolve()
	if !verdict.Visible {
		return false
	}

	for _, feature := range verdict.RequiredFeatures {
		if userID == uuid.Nil {
			return false
		}
		held, err := g.entitlements.HasFeature(ctx, userID, feature)
		if err != nil {
			// Entitlement store failures deny like rule store failures.
			g.warn("entitlement check failed", path, err)
			return false
		}
		if !held {
			return false
		}
	}

	return true
}

// SystemForRoute returns the system descriptor covering path, used by the
// caller to compose a friendly denial message. It never affects the
// allow/deny decision. Nil when the path is uncovered or the lookup fails.
func (g *Gate) SystemForRoute(ctx context.Context, path string) *System {
	rule, err := g.rules.RuleForPath(ctx, path)
	if err != nil {
		return nil
	}
	return rule.OwningSystem()
}

// failurePolicy converts a store error into a boolean outcome.
// Fail closed, with one deliberate asymmetry: a missing-schema error in
// development allows, so first-time setup is not blocked before the
// visibility tables exist.
func (g *Gate) failurePolicy(path string, err error) bool {
	if IsNotProvisioned(err) && g.opts.DevMode {
		g.warn("visibility schema not provisioned, allowing (dev mode)", path, err)
		return true
	}
	g.warn("rule lookup failed, denying", path, err)
	return false
}

func (g *Gate) warn(msg, path string, err error) {
	if g.log == nil {
		return
	}
	g.log.Warn("Gate", msg, map[string]interface{}{
		"path":  path,
		"error": err.Error(),
	})
}
