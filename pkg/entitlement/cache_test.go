package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeChecker struct {
	held  map[string]bool
	err   error
	calls int
}

func (f *fakeChecker) HasFeature(_ context.Context, userID uuid.UUID, feature string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.held[cacheKey(userID, feature)], nil
}

func TestCachedCheckerReadThrough(t *testing.T) {
	user := uuid.New()
	inner := &fakeChecker{held: map[string]bool{cacheKey(user, "pro"): true}}
	cached := NewCachedChecker(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		held, err := cached.HasFeature(ctx, user, "pro")
		if err != nil {
			t.Fatalf("HasFeature: %v", err)
		}
		if !held {
			t.Fatal("want held=true")
		}
	}
	if inner.calls != 1 {
		t.Errorf("store hit %d times, want 1", inner.calls)
	}

	// Negative answers are cached too.
	if held, _ := cached.HasFeature(ctx, user, "export"); held {
		t.Error("want held=false for ungranted feature")
	}
	if held, _ := cached.HasFeature(ctx, user, "export"); held {
		t.Error("want held=false on cached read")
	}
	if inner.calls != 2 {
		t.Errorf("store hit %d times, want 2", inner.calls)
	}
}

func TestCachedCheckerDoesNotCacheErrors(t *testing.T) {
	inner := &fakeChecker{err: errors.New("i/o timeout")}
	cached := NewCachedChecker(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.HasFeature(ctx, uuid.New(), "pro"); err == nil {
			t.Fatal("want error from failing store")
		}
	}
	if inner.calls != 2 {
		t.Errorf("store hit %d times, want 2 (errors not cached)", inner.calls)
	}
}

func TestInvalidateUser(t *testing.T) {
	user := uuid.New()
	other := uuid.New()
	inner := &fakeChecker{held: map[string]bool{
		cacheKey(user, "pro"):  true,
		cacheKey(other, "pro"): true,
	}}
	cached := NewCachedChecker(inner, time.Minute)
	ctx := context.Background()

	cached.HasFeature(ctx, user, "pro")
	cached.HasFeature(ctx, other, "pro")

	cached.InvalidateUser(user)

	cached.HasFeature(ctx, user, "pro")  // miss, refetch
	cached.HasFeature(ctx, other, "pro") // still cached

	if inner.calls != 3 {
		t.Errorf("store hit %d times, want 3", inner.calls)
	}
}
