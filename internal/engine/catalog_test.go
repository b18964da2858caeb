package engine

import (
	"testing"

	"github.com/pkg/errors"
)

func rawEntries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{
			ID:         string(rune('a'+i/26)) + string(rune('a'+i%26)),
			Name:       "Attraction",
			BasePoints: 10,
			Seed:       i + 1,
			Land:       "TL",
		}
	}
	return out
}

func TestEmbeddedCatalog(t *testing.T) {
	c := testCatalog(t)
	if got := len(c.Entries()); got != BracketSize {
		t.Fatalf("entry count = %d, want %d", got, BracketSize)
	}
	e, ok := c.Get("space_mountain")
	if !ok {
		t.Fatal("space_mountain missing from embedded catalog")
	}
	if e.Seed != 1 || e.BasePoints != 10 {
		t.Fatalf("space_mountain seed/base = %d/%d, want 1/10", e.Seed, e.BasePoints)
	}
}

func TestNewCatalogNormalizesDefaults(t *testing.T) {
	raw := rawEntries(BracketSize)
	raw[0].BasePoints = 0
	raw[1].BasePoints = -5
	raw[2].Seed = -1
	raw[3].Land = ""
	raw[4].ShortName = ""
	raw[4].Name = "Seven Dwarfs"

	c, err := NewCatalog(raw)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	got := c.Entries()
	if got[0].BasePoints != defaultBasePoints || got[1].BasePoints != defaultBasePoints {
		t.Fatalf("non-positive base points not defaulted: %d, %d", got[0].BasePoints, got[1].BasePoints)
	}
	if got[2].Seed != 0 {
		t.Fatalf("negative seed = %d, want 0", got[2].Seed)
	}
	if got[3].Land != "TL" {
		t.Fatalf("empty land = %q, want TL", got[3].Land)
	}
	if got[4].ShortName != "Seven Dwarfs" {
		t.Fatalf("short name fallback = %q, want name", got[4].ShortName)
	}
}

func TestNewCatalogRejectsBadInput(t *testing.T) {
	if _, err := NewCatalog(rawEntries(BracketSize - 1)); !errors.Is(err, ErrBadCatalog) {
		t.Fatalf("short catalog err = %v, want ErrBadCatalog", err)
	}

	dup := rawEntries(BracketSize)
	dup[5].ID = dup[4].ID
	if _, err := NewCatalog(dup); !errors.Is(err, ErrBadCatalog) {
		t.Fatalf("duplicate id err = %v, want ErrBadCatalog", err)
	}

	blank := rawEntries(BracketSize)
	blank[7].ID = ""
	if _, err := NewCatalog(blank); !errors.Is(err, ErrBadCatalog) {
		t.Fatalf("blank id err = %v, want ErrBadCatalog", err)
	}
}

func TestShortNameFallback(t *testing.T) {
	c := testCatalog(t)
	if got := c.ShortName("fairytale_hall"); got != "Fairyt. Hall" {
		t.Fatalf("short name = %q", got)
	}
	if got := c.ShortName("no_such_ride"); got != "no_such_ride" {
		t.Fatalf("unknown id short name = %q, want id echoed", got)
	}
}
