package profile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "profiles.db"), ttl)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t, time.Hour)
	ctx := context.Background()

	p := Profile{
		ID:   uuid.MustParse("f84c6a79-0a4e-45e0-879b-cd49ebd4c4e2"),
		Name: "Steve",
		Properties: []Property{
			{Name: "textures", Value: "ZGF0YQ==", Signature: "c2ln"},
		},
	}
	if err := c.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, p.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "Steve" || len(got.Properties) != 1 || got.Properties[0].Value != "ZGF0YQ==" {
		t.Fatalf("get: %+v", got)
	}

	// Name lookups ignore case, like the API does.
	got, ok, err = c.GetByName(ctx, "steve")
	if err != nil || !ok {
		t.Fatalf("get by name: ok=%v err=%v", ok, err)
	}
	if got.ID != p.ID {
		t.Fatalf("get by name: %+v", got)
	}

	if _, ok, _ := c.Get(ctx, uuid.UUID{}); ok {
		t.Fatalf("unexpected hit for unknown id")
	}
}

func TestCacheTTL(t *testing.T) {
	c := openTestCache(t, time.Minute)
	ctx := context.Background()

	p := Profile{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555"), Name: "old"}
	if err := c.Put(ctx, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Move the clock past the ttl.
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, ok, err := c.Get(ctx, p.ID); err != nil || ok {
		t.Fatalf("expired entry: ok=%v err=%v", ok, err)
	}

	// A fresh Put under the shifted clock is visible again.
	if err := c.Put(ctx, p); err != nil {
		t.Fatalf("re-put: %v", err)
	}
	if _, ok, err := c.Get(ctx, p.ID); err != nil || !ok {
		t.Fatalf("refreshed entry: ok=%v err=%v", ok, err)
	}
}

func TestCacheReplace(t *testing.T) {
	c := openTestCache(t, 0)
	ctx := context.Background()

	id := uuid.MustParse("f84c6a79-0a4e-45e0-879b-cd49ebd4c4e2")
	if err := c.Put(ctx, Profile{ID: id, Name: "before"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Put(ctx, Profile{ID: id, Name: "after"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, ok, err := c.Get(ctx, id)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "after" {
		t.Fatalf("got %q", got.Name)
	}
}
