package serverutils

import (
	"context"
	"net/http/httptest"
	"testing"

	"civicmap-be/pkg/gate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubVisibility struct {
	visible bool
	system  *gate.System
	paths   []string
}

func (s *stubVisibility) IsRouteVisible(ctx context.Context, path string, userID uuid.UUID) bool {
	s.paths = append(s.paths, path)
	return s.visible
}

func (s *stubVisibility) SystemForRoute(ctx context.Context, path string) *gate.System {
	return s.system
}

func (s *stubVisibility) InvalidateRules() {}

func newGateApp(vis *stubVisibility) *fiber.App {
	app := fiber.New()
	app.Use(VisibilityMiddleware(vis, nil))
	app.Get("/*", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func TestVisibilityMiddlewareAllows(t *testing.T) {
	vis := &stubVisibility{visible: true}
	app := newGateApp(vis)

	resp, err := app.Test(httptest.NewRequest("GET", "/stories", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(vis.paths) != 1 || vis.paths[0] != "/stories" {
		t.Fatalf("expected one check for /stories, got %v", vis.paths)
	}
}

func TestVisibilityMiddlewareRedirectsWithSystemName(t *testing.T) {
	vis := &stubVisibility{
		visible: false,
		system:  &gate.System{Key: "stories", Name: "Community Stories"},
	}
	app := newGateApp(vis)

	resp, err := app.Test(httptest.NewRequest("GET", "/stories/42", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if loc != "/?hidden_system=Community+Stories" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestVisibilityMiddlewareRedirectsHomeWithoutSystem(t *testing.T) {
	vis := &stubVisibility{visible: false}
	app := newGateApp(vis)

	resp, err := app.Test(httptest.NewRequest("GET", "/anything", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestVisibilityMiddlewareSkipsAPIAndAssets(t *testing.T) {
	vis := &stubVisibility{visible: false}
	app := newGateApp(vis)

	for _, path := range []string{"/api/mentions", "/assets/app.js", "/healthz"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
	if len(vis.paths) != 0 {
		t.Fatalf("gate should not run for exempt paths, got %v", vis.paths)
	}
}
