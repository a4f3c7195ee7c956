package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRuleSource serves rules from a map and can be told to fail.
type fakeRuleSource struct {
	rules map[string]Rule
	err   error
	calls int
}

func (f *fakeRuleSource) RuleForPath(_ context.Context, path string) (Rule, error) {
	f.calls++
	if f.err != nil {
		return Rule{}, f.err
	}
	if r, ok := f.rules[path]; ok {
		return r, nil
	}
	return Rule{Kind: NoRule}, nil
}

type fakeEntitlements struct {
	features map[uuid.UUID]map[string]bool
	err      error
}

func (f *fakeEntitlements) HasFeature(_ context.Context, userID uuid.UUID, feature string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.features[userID][feature], nil
}

func newTestGate(src RuleSource, ents EntitlementChecker, dev bool) *Gate {
	return New(src, ents, Options{AdminPrefix: "/admin", DevMode: dev}, nil)
}

func TestDefaultAllowForUncoveredPaths(t *testing.T) {
	g := newTestGate(&fakeRuleSource{}, &fakeEntitlements{}, false)

	for _, path := range []string{"/", "/about", "/new-experimental-page", "/mentions/123"} {
		if !g.IsRouteVisible(context.Background(), path, uuid.Nil) {
			t.Errorf("IsRouteVisible(%q) = false, want true for uncovered path", path)
		}
	}
	if sys := g.SystemForRoute(context.Background(), "/new-experimental-page"); sys != nil {
		t.Errorf("SystemForRoute(uncovered) = %v, want nil", sys)
	}
}

func TestEnabledDominatesVisible(t *testing.T) {
	disabled := &System{Key: "checkbook", Name: "Checkbook", IsVisible: true, IsEnabled: false}
	src := &fakeRuleSource{rules: map[string]Rule{
		"/checkbook":        {Kind: SystemMatch, System: disabled},
		"/checkbook/detail": {Kind: RouteMatch, Route: &RouteRule{Path: "/checkbook/detail", IsVisible: true, System: disabled}},
	}}
	g := newTestGate(src, &fakeEntitlements{}, false)

	for _, path := range []string{"/checkbook", "/checkbook/detail"} {
		if g.IsRouteVisible(context.Background(), path, uuid.Nil) {
			t.Errorf("IsRouteVisible(%q) = true, want false when system disabled", path)
		}
	}
}

func TestRouteOverrideDeniesUnderActiveSystem(t *testing.T) {
	active := &System{Key: "stories", Name: "Stories", IsVisible: true, IsEnabled: true}
	src := &fakeRuleSource{rules: map[string]Rule{
		"/stories/draft": {Kind: RouteMatch, Route: &RouteRule{Path: "/stories/draft", IsVisible: false, System: active}},
		"/stories":       {Kind: SystemMatch, System: active},
	}}
	g := newTestGate(src, &fakeEntitlements{}, false)

	if g.IsRouteVisible(context.Background(), "/stories/draft", uuid.Nil) {
		t.Error("route-level deny ignored under active system")
	}
	if !g.IsRouteVisible(context.Background(), "/stories", uuid.Nil) {
		t.Error("active system with no override should allow")
	}
}

func TestToggleIsIdempotent(t *testing.T) {
	sys := &System{Key: "stories", Name: "Stories", IsVisible: true, IsEnabled: true}
	src := &fakeRuleSource{rules: map[string]Rule{}}
	reload := func() {
		copy := *sys
		src.rules["/stories"] = Rule{Kind: SystemMatch, System: &copy}
	}
	reload()
	g := newTestGate(src, &fakeEntitlements{}, false)

	before := g.IsRouteVisible(context.Background(), "/stories", uuid.Nil)

	sys.IsVisible = false
	reload()
	if g.IsRouteVisible(context.Background(), "/stories", uuid.Nil) {
		t.Error("hidden system should deny")
	}

	sys.IsVisible = true
	reload()
	after := g.IsRouteVisible(context.Background(), "/stories", uuid.Nil)

	if before != after || !after {
		t.Errorf("toggle pair not idempotent: before=%v after=%v", before, after)
	}
}

func TestRequiredFeature(t *testing.T) {
	proUser := uuid.New()
	freeUser := uuid.New()
	sys := &System{Key: "insights", Name: "Insights", IsVisible: true, IsEnabled: true, RequiresFeature: "pro"}
	src := &fakeRuleSource{rules: map[string]Rule{
		"/insights": {Kind: SystemMatch, System: sys},
	}}
	ents := &fakeEntitlements{features: map[uuid.UUID]map[string]bool{
		proUser: {"pro": true},
	}}
	g := newTestGate(src, ents, false)
	ctx := context.Background()

	if !g.IsRouteVisible(ctx, "/insights", proUser) {
		t.Error("pro user denied")
	}
	if g.IsRouteVisible(ctx, "/insights", freeUser) {
		t.Error("non-pro user allowed")
	}
	if g.IsRouteVisible(ctx, "/insights", uuid.Nil) {
		t.Error("anonymous request holds no capability, should deny")
	}
}

func TestEntitlementStoreFailureDenies(t *testing.T) {
	sys := &System{IsVisible: true, IsEnabled: true, RequiresFeature: "pro"}
	src := &fakeRuleSource{rules: map[string]Rule{
		"/insights": {Kind: SystemMatch, System: sys},
	}}
	ents := &fakeEntitlements{err: errors.New("connection refused")}
	g := newTestGate(src, ents, false)

	if g.IsRouteVisible(context.Background(), "/insights", uuid.New()) {
		t.Error("entitlement store failure must fail closed")
	}
}

func TestHiddenSystemScenario(t *testing.T) {
	// System stories: visible=false enabled=true, no route row for /stories.
	sys := &System{Key: "stories", Name: "Stories", IsVisible: false, IsEnabled: true}
	src := &fakeRuleSource{rules: map[string]Rule{
		"/stories": {Kind: SystemMatch, System: sys},
	}}
	g := newTestGate(src, &fakeEntitlements{}, false)

	if g.IsRouteVisible(context.Background(), "/stories", uuid.Nil) {
		t.Error("IsRouteVisible(/stories) = true, want false")
	}
	got := g.SystemForRoute(context.Background(), "/stories")
	if got == nil || got.Name != "Stories" {
		t.Errorf("SystemForRoute(/stories) = %v, want Stories descriptor", got)
	}
}

func TestStoreFailureFailsClosed(t *testing.T) {
	src := &fakeRuleSource{err: errors.New("dial tcp 10.0.0.5:5432: i/o timeout")}
	g := newTestGate(src, &fakeEntitlements{}, false)

	if g.IsRouteVisible(context.Background(), "/anything", uuid.Nil) {
		t.Error("store failure must deny in production mode")
	}
	if sys := g.SystemForRoute(context.Background(), "/anything"); sys != nil {
		t.Errorf("SystemForRoute on failure = %v, want nil", sys)
	}
}

func TestNotProvisionedFailsOpenInDevOnly(t *testing.T) {
	notProvisioned := errors.New(`ERROR: relation "admin.system_visibility" does not exist (SQLSTATE 42P01)`)

	dev := newTestGate(&fakeRuleSource{err: notProvisioned}, &fakeEntitlements{}, true)
	if !dev.IsRouteVisible(context.Background(), "/stories", uuid.Nil) {
		t.Error("missing schema in dev mode must allow")
	}

	prod := newTestGate(&fakeRuleSource{err: notProvisioned}, &fakeEntitlements{}, false)
	if prod.IsRouteVisible(context.Background(), "/stories", uuid.Nil) {
		t.Error("missing schema outside dev mode must deny")
	}

	// A transport failure in dev mode still denies.
	devTimeout := newTestGate(&fakeRuleSource{err: errors.New("i/o timeout")}, &fakeEntitlements{}, true)
	if devTimeout.IsRouteVisible(context.Background(), "/stories", uuid.Nil) {
		t.Error("transport failure must deny even in dev mode")
	}
}

func TestAdminPrefixCarveOut(t *testing.T) {
	// Even with the store down, admin pages stay reachable so the flags
	// remain manageable.
	src := &fakeRuleSource{err: errors.New("i/o timeout")}
	g := newTestGate(src, &fakeEntitlements{}, false)

	if !g.IsRouteVisible(context.Background(), "/admin/systems", uuid.Nil) {
		t.Error("admin prefix must always be visible")
	}
	if src.calls != 0 {
		t.Errorf("admin carve-out hit the store %d times, want 0", src.calls)
	}
}

func TestIsNotProvisioned(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pg undefined table", &pgconn.PgError{Code: "42P01", Message: `relation "routes" does not exist`}, true},
		{"pg invalid schema", &pgconn.PgError{Code: "3F000", Message: `schema "admin" does not exist`}, true},
		{"pg undefined function", &pgconn.PgError{Code: "42883", Message: `function rule_for_path(text) does not exist`}, true},
		{"pg other error", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, false},
		{"flattened relation message", errors.New(`relation "admin.system_visibility" does not exist`), true},
		{"timeout", errors.New("dial tcp: i/o timeout"), false},
		{"does not exist without subject", errors.New("row does not exist"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotProvisioned(tt.err); got != tt.want {
				t.Errorf("IsNotProvisioned(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCachedRuleSource(t *testing.T) {
	sys := &System{Key: "stories", IsVisible: true, IsEnabled: true}
	src := &fakeRuleSource{rules: map[string]Rule{
		"/stories": {Kind: SystemMatch, System: sys},
	}}
	cached := NewCachedRuleSource(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cached.RuleForPath(ctx, "/stories"); err != nil {
			t.Fatalf("RuleForPath: %v", err)
		}
	}
	if src.calls != 1 {
		t.Errorf("store hit %d times, want 1 (read-through)", src.calls)
	}

	cached.Invalidate()
	if _, err := cached.RuleForPath(ctx, "/stories"); err != nil {
		t.Fatalf("RuleForPath after invalidate: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("store hit %d times after invalidate, want 2", src.calls)
	}
}

func TestCachedRuleSourceDoesNotCacheErrors(t *testing.T) {
	src := &fakeRuleSource{err: errors.New("i/o timeout")}
	cached := NewCachedRuleSource(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.RuleForPath(ctx, "/stories"); err == nil {
			t.Fatal("want error from failing source")
		}
	}
	if src.calls != 2 {
		t.Errorf("store hit %d times, want 2 (errors not cached)", src.calls)
	}

	// The gate over the failing cached source still fails closed.
	g := newTestGate(cached, &fakeEntitlements{}, false)
	if g.IsRouteVisible(ctx, "/stories", uuid.Nil) {
		t.Error("cache-miss-plus-store-failure must deny")
	}
}
