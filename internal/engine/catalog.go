package engine

import (
	_ "embed"
	"encoding/json"

	"github.com/pkg/errors"
)

// BracketSize is the number of catalog entries a run is seeded from.
const BracketSize = 32

const defaultBasePoints = 10

var ErrBadCatalog = errors.New("invalid attraction catalog")

// Entry is an immutable catalog item. Loaded once at startup, never mutated.
type Entry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"shortName"`
	Seed       int    `json:"seed"`
	BasePoints int    `json:"basePoints"`
	Land       string `json:"land"`
}

// Catalog holds the seeded entries in fixed pairing order: positions (0,1),
// (2,3), ... (30,31) are the Round 1 matchups.
type Catalog struct {
	entries []Entry
	byID    map[string]Entry
}

//go:embed attractions.json
var attractionsJSON []byte

// LoadCatalog parses the embedded attraction list.
func LoadCatalog() (*Catalog, error) {
	var raw []Entry
	if err := json.Unmarshal(attractionsJSON, &raw); err != nil {
		return nil, errors.Wrap(err, "parse attractions.json")
	}
	return NewCatalog(raw)
}

// NewCatalog normalizes and validates a list of entries. Missing fields get
// defaults (basePoints 10, land "TL"); a wrong entry count or duplicate id is
// a fatal configuration error.
func NewCatalog(raw []Entry) (*Catalog, error) {
	if len(raw) != BracketSize {
		return nil, errors.Wrapf(ErrBadCatalog, "want %d entries, got %d", BracketSize, len(raw))
	}
	entries := make([]Entry, len(raw))
	byID := make(map[string]Entry, len(raw))
	for i, e := range raw {
		if e.ID == "" {
			return nil, errors.Wrapf(ErrBadCatalog, "entry %d has no id", i)
		}
		if e.BasePoints <= 0 {
			e.BasePoints = defaultBasePoints
		}
		if e.Seed < 0 {
			e.Seed = 0
		}
		if e.Land == "" {
			e.Land = "TL"
		}
		if e.ShortName == "" {
			e.ShortName = e.Name
		}
		if _, dup := byID[e.ID]; dup {
			return nil, errors.Wrapf(ErrBadCatalog, "duplicate id %q", e.ID)
		}
		entries[i] = e
		byID[e.ID] = e
	}
	return &Catalog{entries: entries, byID: byID}, nil
}

// Entries returns the entries in pairing order.
func (c *Catalog) Entries() []Entry { return c.entries }

// Get looks up an entry by id.
func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// ShortName resolves a display label for an entry id, falling back to the id
// itself for entries no longer in the catalog.
func (c *Catalog) ShortName(id string) string {
	if e, ok := c.byID[id]; ok {
		if e.ShortName != "" {
			return e.ShortName
		}
		if e.Name != "" {
			return e.Name
		}
	}
	return id
}
