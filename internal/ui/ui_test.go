package ui

import (
	"testing"

	"github.com/everyride/marchmagic/internal/engine"
)

func TestThemeCycleWraps(t *testing.T) {
	names := themeNames()
	if len(names) < 2 {
		t.Fatalf("expected multiple palettes, got %d", len(names))
	}
	cur := names[0]
	for range names {
		cur = nextThemeName(cur, 1)
	}
	if cur != names[0] {
		t.Fatalf("cycling %d steps did not wrap: got %s", len(names), cur)
	}
	if got := nextThemeName(names[0], -1); got != names[len(names)-1] {
		t.Fatalf("backwards wrap got %s", got)
	}
}

func TestPaletteFallbacks(t *testing.T) {
	p := paletteFor("no-such-theme")
	if p.Accent == "" {
		t.Fatal("unknown theme did not fall back to a default palette")
	}
	if p.roundColor(engine.RoundID("R9")) != p.Accent {
		t.Fatal("unknown round should use the accent color")
	}
}

func TestPlaceholderName(t *testing.T) {
	c, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if got := placeholderName(c, ""); got != "TBD" {
		t.Fatalf("empty slot = %q, want TBD", got)
	}
	if got := placeholderName(c, "space_mountain"); got != "Space Mtn" {
		t.Fatalf("slot name = %q", got)
	}
}
