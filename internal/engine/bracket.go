package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Matchup is one slot pair within a round. Slots hold entry ids; an empty
// string means "not yet determined". Invariant: a matchup has a winner only
// when both slots are filled, and winner/loser are the two slot occupants.
type Matchup struct {
	ID        string     `json:"id"`
	A         string     `json:"a"`
	B         string     `json:"b"`
	Winner    string     `json:"winner"`
	Loser     string     `json:"loser"`
	DecidedAt *time.Time `json:"decidedAt"`
}

// Ready reports whether both participants are known.
func (m *Matchup) Ready() bool { return m.A != "" && m.B != "" }

// Decided reports whether a winner has been recorded.
func (m *Matchup) Decided() bool { return m.Winner != "" }

// Has reports whether entry id occupies one of the slots.
func (m *Matchup) Has(id string) bool { return id != "" && (m.A == id || m.B == id) }

// Other returns the slot occupant opposite id.
func (m *Matchup) Other(id string) string {
	if m.A == id {
		return m.B
	}
	return m.A
}

func (m *Matchup) clearDecision() {
	m.Winner = ""
	m.Loser = ""
	m.DecidedAt = nil
}

func (m *Matchup) clear() {
	m.A = ""
	m.B = ""
	m.clearDecision()
}

func emptyMatchup() Matchup {
	return Matchup{ID: uuid.NewString()}
}

// Bracket is the derived projection: five rounds of matchups plus a
// current-round pointer used for navigation. It is always recomputable from
// the catalog and the decision log.
type Bracket struct {
	CurrentRound RoundID               `json:"currentRoundId"`
	Rounds       map[RoundID][]Matchup `json:"rounds"`
}

// SeedBracket builds the initial projection: Round 1 gets 16 matchups from
// adjacent catalog pairs, later rounds start empty until unlocked.
func SeedBracket(c *Catalog) (*Bracket, error) {
	entries := c.Entries()
	if len(entries) != BracketSize {
		return nil, ErrBadCatalog
	}
	r1 := make([]Matchup, 0, BracketSize/2)
	for i := 0; i < BracketSize; i += 2 {
		m := emptyMatchup()
		m.A = entries[i].ID
		m.B = entries[i+1].ID
		r1 = append(r1, m)
	}
	b := &Bracket{
		CurrentRound: RoundR1,
		Rounds: map[RoundID][]Matchup{
			RoundR1: r1,
			RoundR2: {},
			RoundR3: {},
			RoundR4: {},
			RoundR5: {},
		},
	}
	return b, nil
}

// Matchup returns a pointer into the round's slice, or nil.
func (b *Bracket) Matchup(round RoundID, matchupID string) *Matchup {
	ms := b.Rounds[round]
	for i := range ms {
		if ms[i].ID == matchupID {
			return &ms[i]
		}
	}
	return nil
}

// RoundComplete reports whether every matchup in the round is decided. An
// unbuilt (empty) round is not complete.
func (b *Bracket) RoundComplete(round RoundID) bool {
	ms := b.Rounds[round]
	if len(ms) == 0 {
		return false
	}
	for i := range ms {
		if !ms[i].Decided() {
			return false
		}
	}
	return true
}

// SyncDownstream propagates winners forward one round pair at a time. It is
// idempotent: calling it any number of times yields the same projection.
//
// The correctness rule: when an upstream change alters a matchup's
// participants, that matchup's decision and every round after it are cleared
// unconditionally. The bracket therefore stays a pure function of the
// decision log no matter how often or in what order sync runs.
func (b *Bracket) SyncDownstream() {
	for i := 0; i < len(Rounds)-1; i++ {
		prevID := Rounds[i].ID
		nextID := Rounds[i+1].ID

		prev := b.Rounds[prevID]
		winners := make([]string, len(prev))
		for k := range prev {
			winners[k] = prev[k].Winner
		}

		// Next round is always exactly half the size of the previous one.
		// Excess matchups only arise from a prior inconsistent state and are
		// dropped from the end.
		needed := len(prev) / 2
		next := b.Rounds[nextID]
		for len(next) < needed {
			next = append(next, emptyMatchup())
		}
		if len(next) > needed {
			next = next[:needed]
		}

		for k := 0; k < needed; k++ {
			left, right := winners[2*k], winners[2*k+1]
			mm := &next[k]
			if left != "" && right != "" {
				if mm.A != left || mm.B != right {
					mm.A = left
					mm.B = right
					mm.clearDecision()
					// Inputs to every later round are now stale.
					for j := i + 2; j < len(Rounds); j++ {
						b.Rounds[Rounds[j].ID] = []Matchup{}
					}
				}
			} else {
				mm.clear()
			}
		}
		b.Rounds[nextID] = next
	}
}

// settleCurrentRound points CurrentRound at the earliest round holding an
// undecided-but-populated matchup; failing that, the deepest populated
// round; failing that, Round 1.
func (b *Bracket) settleCurrentRound() {
	for _, r := range Rounds {
		for _, m := range b.Rounds[r.ID] {
			if m.Ready() && !m.Decided() {
				b.CurrentRound = r.ID
				return
			}
		}
	}
	for i := len(Rounds) - 1; i >= 0; i-- {
		for _, m := range b.Rounds[Rounds[i].ID] {
			if m.Ready() {
				b.CurrentRound = Rounds[i].ID
				return
			}
		}
	}
	b.CurrentRound = RoundR1
}

// RebuildFromLog replays the decision log against a freshly seeded bracket.
// Events are applied in timestamp order; after each one the result is
// propagated downstream so later-round events find their matchups. An event
// whose matchup cannot be located by id is matched by its unordered
// participant pair (rebuild resets matchup ids); if that fails too, or if
// the matchup was already decided, the event is an orphan and is not
// applied (logs may predate a reshaped bracket). The second return value is
// the applied log, ascending by timestamp, with orphans dropped and each
// event's matchup id rewritten to the matchup it was applied to.
//
// This is a total function: it always yields a consistent bracket, and the
// applied log replayed again reproduces it exactly.
func RebuildFromLog(c *Catalog, log []DecisionEvent) (*Bracket, []DecisionEvent, error) {
	b, err := SeedBracket(c)
	if err != nil {
		return nil, nil, err
	}

	events := make([]DecisionEvent, len(log))
	copy(events, log)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	applied := make([]DecisionEvent, 0, len(events))
	for _, ev := range events {
		if ev.Type != EventMatchDecided {
			continue
		}
		match := b.Matchup(ev.Round, ev.MatchupID)
		if match == nil || !match.Has(ev.WinnerID) || !match.Has(ev.LoserID) {
			match = nil
			ms := b.Rounds[ev.Round]
			for i := range ms {
				if ms[i].Has(ev.WinnerID) && ms[i].Has(ev.LoserID) {
					match = &ms[i]
					break
				}
			}
		}
		if match == nil || match.Decided() {
			continue
		}
		match.Winner = ev.WinnerID
		match.Loser = ev.LoserID
		t := ev.Time
		match.DecidedAt = &t
		// Reseeding assigned fresh matchup ids; the retained event must
		// reference the matchup it now lives in or a later undo cannot
		// find it.
		ev.MatchupID = match.ID
		applied = append(applied, ev)

		b.SyncDownstream()
		if b.RoundComplete(ev.Round) {
			if next, ok := NextRound(ev.Round); ok {
				b.CurrentRound = next
			}
		}
	}

	// One more pass guarantees slot propagation consistency.
	b.SyncDownstream()
	b.settleCurrentRound()
	return b, applied, nil
}
