package services

import (
	"context"
	"errors"
	"testing"

	specrepo "github.com/yungbote/shopbot-backend/internal/data/repos/spec"
	"github.com/yungbote/shopbot-backend/internal/data/repos/testutil"
)

func TestSanitizeDetailName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain korean", "엔진오일", "엔진오일"},
		{"inner whitespace", "강아지 사료", "강아지_사료"},
		{"slashes and symbols", "오일/첨가제/필터!", "오일_첨가제_필터"},
		{"surrounding whitespace", "  세차용품  ", "세차용품"},
		{"collapsed runs", "a  / b", "a_b"},
		{"mixed ascii", "Wiper-Blade_01", "Wiper-Blade_01"},
		{"only symbols", "///", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeDetailName(tt.in)
			if got != tt.want {
				t.Fatalf("SanitizeDetailName(%q)=%q, want %q", tt.in, got, tt.want)
			}
			if again := SanitizeDetailName(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func newTestSpecCache(t *testing.T) SpecCache {
	t.Helper()
	log := testutil.Logger(t)
	repo := specrepo.NewCategorySpecRepo(testutil.DB(t), log)
	return NewSpecCache(repo, log)
}

func sampleSpecData() SpecData {
	return SpecData{
		Order: []string{"색상", "사이즈"},
		Attrs: map[string]AttributeOptions{
			"색상":  {Labels: []string{"빨강", "파랑"}},
			"사이즈": {Labels: []string{"S", "M"}},
		},
	}
}

func TestSpecCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestSpecCache(t)
	data := sampleSpecData()

	if cache.Exists(ctx, "엔진오일") {
		t.Fatal("fresh cache must not report a hit")
	}
	if _, err := cache.Load(ctx, "엔진오일"); !errors.Is(err, ErrSpecNotFound) {
		t.Fatalf("expected ErrSpecNotFound, got %v", err)
	}

	if err := cache.Save(ctx, "오일/첨가제/필터", "엔진오일", "https://shop.example/oil", data); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !cache.Exists(ctx, "엔진오일") {
		t.Fatal("expected hit after save")
	}

	loaded, err := cache.Load(ctx, "엔진오일")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Order) != 2 || loaded.Order[0] != "색상" {
		t.Fatalf("loaded order wrong: %v", loaded.Order)
	}
	if got := loaded.Attrs["사이즈"].Labels; len(got) != 2 || got[0] != "S" {
		t.Fatalf("loaded options wrong: %v", got)
	}
}

func TestSpecCacheCollisionRejected(t *testing.T) {
	ctx := context.Background()
	cache := newTestSpecCache(t)
	data := sampleSpecData()

	// "a b" and "a/b" both sanitize to "a_b".
	if err := cache.Save(ctx, "mid", "a b", "https://shop.example/1", data); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := cache.Save(ctx, "mid", "a/b", "https://shop.example/2", data); !errors.Is(err, ErrSpecConflict) {
		t.Fatalf("expected ErrSpecConflict, got %v", err)
	}

	// The colliding name is not a hit either.
	if cache.Exists(ctx, "a/b") {
		t.Fatal("colliding name must not report a hit")
	}
	if _, err := cache.Load(ctx, "a/b"); !errors.Is(err, ErrSpecNotFound) {
		t.Fatalf("expected ErrSpecNotFound for colliding name, got %v", err)
	}

	// Re-saving the owning name is an idempotent overwrite.
	if err := cache.Save(ctx, "mid", "a b", "https://shop.example/1", data); err != nil {
		t.Fatalf("re-save failed: %v", err)
	}
}

func TestSpecCacheEmptySanitizedName(t *testing.T) {
	ctx := context.Background()
	cache := newTestSpecCache(t)

	if err := cache.Save(ctx, "mid", "///", "https://shop.example/x", sampleSpecData()); !errors.Is(err, ErrEmptySanitizedName) {
		t.Fatalf("expected ErrEmptySanitizedName, got %v", err)
	}
	if cache.Exists(ctx, "///") {
		t.Fatal("unsanitizable name must never report a hit")
	}
}
