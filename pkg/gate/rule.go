package gate

import "github.com/google/uuid"

// System is a named feature area mapped to a primary route prefix.
// A system is usable only while both flags are true; toggling the flags
// never deletes the data living under the system.
type System struct {
	Id              uuid.UUID
	Key             string // stable identifier, e.g. "stories"
	Name            string // display name for denial messages
	RoutePrefix     string
	IsVisible       bool
	IsEnabled       bool
	RequiresFeature string // capability key, empty when none
}

// Active reports whether the system currently permits page access.
// IsEnabled=false always wins over IsVisible.
func (s *System) Active() bool {
	return s.IsVisible && s.IsEnabled
}

// SystemState is the observable admin-facing state of a system.
type SystemState string

const (
	StateActive              SystemState = "active"
	StateHiddenButFunctional SystemState = "hidden"   // visible=false, enabled=true: hidden from nav, direct links kept working by API handlers, pages blocked
	StateDisabledButVisible  SystemState = "disabled" // visible=true, enabled=false: fully blocked
	StateFullyDisabled       SystemState = "off"
)

func (s *System) State() SystemState {
	switch {
	case s.IsVisible && s.IsEnabled:
		return StateActive
	case !s.IsVisible && s.IsEnabled:
		return StateHiddenButFunctional
	case s.IsVisible && !s.IsEnabled:
		return StateDisabledButVisible
	default:
		return StateFullyDisabled
	}
}

// RouteRule is a page-level visibility override for a single path.
// System may be nil: either the route is unowned, or its system
// reference dangles (system deleted). A dangling reference falls back
// to "no system rule" while the route's own flag still applies.
type RouteRule struct {
	Path            string
	IsVisible       bool
	RequiresFeature string
	System          *System
}

// RuleKind tags the precedence tier a path resolved to.
type RuleKind int

const (
	NoRule      RuleKind = iota // uncovered path
	RouteMatch                  // explicit route row, most specific tier
	SystemMatch                 // system prefix only
)

// Rule is the outcome of a single rule lookup for a path.
// Exactly one tier applies; RouteMatch carries its owning system
// inside Route, SystemMatch carries System directly.
type Rule struct {
	Kind   RuleKind
	Route  *RouteRule
	System *System
}

// Verdict is the page-level decision before capability checks.
type Verdict struct {
	Visible          bool
	RequiredFeatures []string
}

// Resolve walks the precedence chain left to right:
// no rule -> default-allow, route rule -> route flag AND system flags,
// system rule -> system flags. Capability requirements are collected,
// not evaluated; the caller checks them against the requester.
func (r Rule) Resolve() Verdict {
	switch r.Kind {
	case RouteMatch:
		v := Verdict{Visible: r.Route.IsVisible}
		if r.Route.RequiresFeature != "" {
			v.RequiredFeatures = append(v.RequiredFeatures, r.Route.RequiresFeature)
		}
		if sys := r.Route.System; sys != nil {
			v.Visible = v.Visible && sys.Active()
			if sys.RequiresFeature != "" {
				v.RequiredFeatures = append(v.RequiredFeatures, sys.RequiresFeature)
			}
		}
		return v

	case SystemMatch:
		v := Verdict{Visible: r.System.Active()}
		if r.System.RequiresFeature != "" {
			v.RequiredFeatures = append(v.RequiredFeatures, r.System.RequiresFeature)
		}
		return v

	default:
		// Uncovered paths are always visible so new pages don't get
		// blocked before being registered.
		return Verdict{Visible: true}
	}
}

// OwningSystem returns the system this rule belongs to, nil when uncovered
// or dangling. Used only for the friendly name in denial messages.
func (r Rule) OwningSystem() *System {
	switch r.Kind {
	case RouteMatch:
		return r.Route.System
	case SystemMatch:
		return r.System
	default:
		return nil
	}
}
