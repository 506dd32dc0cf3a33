package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestPreferenceStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewPreferenceStore(client)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "pixelQuizPlayerName"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "pixelQuizPlayerName", "Ava"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("pixelquiz:pref:pixelQuizPlayerName") {
		t.Fatalf("expected prefixed redis key")
	}

	value, ok, err := store.Get(ctx, "pixelQuizPlayerName")
	if err != nil || !ok || value != "Ava" {
		t.Fatalf("get: value=%q ok=%v err=%v", value, ok, err)
	}

	if err := store.Delete(ctx, "pixelQuizPlayerName"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("pixelquiz:pref:pixelQuizPlayerName") {
		t.Fatalf("expected key removed")
	}
}

func TestPreferenceStoreLastWriteWins(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewPreferenceStore(client)
	ctx := context.Background()

	_ = store.Set(ctx, "pixelQuizDuration", "quick")
	_ = store.Set(ctx, "pixelQuizDuration", "extended")

	value, ok, err := store.Get(ctx, "pixelQuizDuration")
	if err != nil || !ok || value != "extended" {
		t.Fatalf("expected last write, got %q ok=%v err=%v", value, ok, err)
	}
}
