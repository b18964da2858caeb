package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

func baseTime() time.Time {
	return time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
}

func newTestRun(t *testing.T, c *Catalog) *Run {
	t.Helper()
	r, err := NewRun(c, Settings{}, baseTime())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	return r
}

// decideRound picks slot A for every undecided matchup in the round,
// advancing the clock one minute per decision.
func decideRound(t *testing.T, c *Catalog, r *Run, round RoundID, at *time.Time) {
	t.Helper()
	n := len(r.Bracket.Rounds[round])
	for i := 0; i < n; i++ {
		m := r.Bracket.Rounds[round][i]
		if m.Decided() {
			continue
		}
		*at = at.Add(time.Minute)
		if _, err := r.PickWinner(c, round, m.ID, m.A, *at); err != nil {
			t.Fatalf("pick %s matchup %d: %v", round, i, err)
		}
	}
}

func cloneBracket(t *testing.T, b *Bracket) *Bracket {
	t.Helper()
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal bracket: %v", err)
	}
	var out Bracket
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal bracket: %v", err)
	}
	return &out
}

func TestSeedBracketFreshState(t *testing.T) {
	c := testCatalog(t)
	b, err := SeedBracket(c)
	if err != nil {
		t.Fatalf("SeedBracket: %v", err)
	}
	if b.CurrentRound != RoundR1 {
		t.Fatalf("current round = %s, want R1", b.CurrentRound)
	}
	r1 := b.Rounds[RoundR1]
	if len(r1) != 16 {
		t.Fatalf("R1 has %d matchups, want 16", len(r1))
	}
	entries := c.Entries()
	for i, m := range r1 {
		if !m.Ready() || m.Decided() {
			t.Fatalf("R1 matchup %d not fresh: %+v", i, m)
		}
		if m.A != entries[2*i].ID || m.B != entries[2*i+1].ID {
			t.Fatalf("R1 matchup %d pairing wrong: %s vs %s", i, m.A, m.B)
		}
	}
	for _, round := range []RoundID{RoundR2, RoundR3, RoundR4, RoundR5} {
		if len(b.Rounds[round]) != 0 {
			t.Fatalf("%s should start empty, has %d", round, len(b.Rounds[round]))
		}
	}
}

func TestSeedBracketRejectsWrongCount(t *testing.T) {
	c := testCatalog(t)
	_, err := NewCatalog(c.Entries()[:31])
	if err == nil {
		t.Fatal("expected error for 31 entries")
	}
}

func TestSingleDecision(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()

	m := r.Bracket.Rounds[RoundR1][0]
	at = at.Add(time.Minute)
	ev, err := r.PickWinner(c, RoundR1, m.ID, m.A, at)
	if err != nil {
		t.Fatalf("PickWinner: %v", err)
	}
	winner, _ := c.Get(m.A)
	if ev.Points != winner.BasePoints {
		t.Fatalf("R1 points = %d, want base %d", ev.Points, winner.BasePoints)
	}
	if got := TotalPoints(r.Events); got != winner.BasePoints {
		t.Fatalf("total = %d, want %d", got, winner.BasePoints)
	}
	if got := DecisionsCount(r.Events); got != 1 {
		t.Fatalf("decisions = %d, want 1", got)
	}
	// Sibling matchup undecided, so the R2 slot stays empty.
	if len(r.Bracket.Rounds[RoundR2]) != 8 {
		t.Fatalf("R2 size = %d, want 8 shells", len(r.Bracket.Rounds[RoundR2]))
	}
	if r2 := r.Bracket.Rounds[RoundR2][0]; r2.A != "" || r2.B != "" {
		t.Fatalf("R2 matchup 0 populated too early: %+v", r2)
	}

	// Deciding the sibling fills both R2 slots.
	sib := r.Bracket.Rounds[RoundR1][1]
	at = at.Add(time.Minute)
	if _, err := r.PickWinner(c, RoundR1, sib.ID, sib.B, at); err != nil {
		t.Fatalf("pick sibling: %v", err)
	}
	r2 := r.Bracket.Rounds[RoundR2][0]
	if r2.A != m.A || r2.B != sib.B {
		t.Fatalf("R2 matchup 0 = %s vs %s, want %s vs %s", r2.A, r2.B, m.A, sib.B)
	}
}

func TestFullRoundCompletion(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()
	decideRound(t, c, r, RoundR1, &at)

	r1 := r.Bracket.Rounds[RoundR1]
	r2 := r.Bracket.Rounds[RoundR2]
	if len(r2) != 8 {
		t.Fatalf("R2 size = %d, want 8", len(r2))
	}
	for k, m := range r2 {
		if !m.Ready() {
			t.Fatalf("R2 matchup %d not ready", k)
		}
		if m.A != r1[2*k].Winner || m.B != r1[2*k+1].Winner {
			t.Fatalf("R2 matchup %d pairs %s/%s, want winners of R1 %d/%d", k, m.A, m.B, 2*k, 2*k+1)
		}
	}
}

func TestSyncDownstreamIdempotent(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()
	decideRound(t, c, r, RoundR1, &at)
	decideRound(t, c, r, RoundR2, &at)
	// Decide part of R3 to leave a mixed state.
	m := r.Bracket.Rounds[RoundR3][0]
	at = at.Add(time.Minute)
	if _, err := r.PickWinner(c, RoundR3, m.ID, m.A, at); err != nil {
		t.Fatalf("pick R3: %v", err)
	}

	before := cloneBracket(t, r.Bracket)
	r.Bracket.SyncDownstream()
	r.Bracket.SyncDownstream()
	if diff := cmp.Diff(before, r.Bracket); diff != "" {
		t.Fatalf("sync not idempotent (-before +after):\n%s", diff)
	}
}

func TestRoundSizingAfterSync(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	r.Bracket.SyncDownstream()
	for i := 0; i < len(Rounds)-1; i++ {
		prev := len(r.Bracket.Rounds[Rounds[i].ID])
		next := len(r.Bracket.Rounds[Rounds[i+1].ID])
		if next != prev/2 {
			t.Fatalf("%s has %d matchups, want %d", Rounds[i+1].ID, next, prev/2)
		}
	}
}

func TestSyncDropsExcessMatchups(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	// Inject an inconsistent oversized R2.
	for i := 0; i < 10; i++ {
		r.Bracket.Rounds[RoundR2] = append(r.Bracket.Rounds[RoundR2], emptyMatchup())
	}
	r.Bracket.SyncDownstream()
	if got := len(r.Bracket.Rounds[RoundR2]); got != 8 {
		t.Fatalf("R2 size after sync = %d, want 8", got)
	}
}

func TestRebuildDeterministic(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()
	decideRound(t, c, r, RoundR1, &at)
	decideRound(t, c, r, RoundR2, &at)

	shuffled := make([]DecisionEvent, len(r.Events))
	for i, ev := range r.Events {
		shuffled[len(r.Events)-1-i] = ev
	}

	b1, applied1, err := RebuildFromLog(c, r.Events)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	b2, applied2, err := RebuildFromLog(c, shuffled)
	if err != nil {
		t.Fatalf("rebuild shuffled: %v", err)
	}
	ignoreIDs := cmpopts.IgnoreFields(Matchup{}, "ID")
	if diff := cmp.Diff(b1, b2, ignoreIDs); diff != "" {
		t.Fatalf("rebuild not deterministic:\n%s", diff)
	}
	if len(applied1) != len(applied2) || len(applied1) != len(r.Events) {
		t.Fatalf("applied counts differ: %d vs %d (log %d)", len(applied1), len(applied2), len(r.Events))
	}
}

func TestRebuildMatchesLiveBracket(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()
	decideRound(t, c, r, RoundR1, &at)
	decideRound(t, c, r, RoundR2, &at)
	decideRound(t, c, r, RoundR3, &at)

	rebuilt, _, err := RebuildFromLog(c, r.Events)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	ignoreIDs := cmpopts.IgnoreFields(Matchup{}, "ID")
	if diff := cmp.Diff(r.Bracket, rebuilt, ignoreIDs); diff != "" {
		t.Fatalf("replay does not reproduce live bracket:\n%s", diff)
	}
}

func TestRebuildDropsOrphans(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()
	decideRound(t, c, r, RoundR1, &at)

	orphan := DecisionEvent{
		ID:        "orphan",
		Type:      EventMatchDecided,
		Round:     RoundR3,
		MatchupID: "gone",
		WinnerID:  "not_a_ride",
		LoserID:   "also_not",
		Points:    999,
		Time:      at.Add(time.Hour),
	}
	log := append(append([]DecisionEvent{}, r.Events...), orphan)
	_, applied, err := RebuildFromLog(c, log)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(applied) != len(r.Events) {
		t.Fatalf("applied %d events, want %d (orphan dropped)", len(applied), len(r.Events))
	}
	for _, ev := range applied {
		if ev.ID == "orphan" {
			t.Fatal("orphan event survived replay")
		}
	}
}

func TestRebuildPairFallback(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()
	decideRound(t, c, r, RoundR1, &at)

	// Matchup ids change across rebuilds; events must still land via the
	// participant pair.
	log := make([]DecisionEvent, len(r.Events))
	copy(log, r.Events)
	for i := range log {
		log[i].MatchupID = "stale-" + log[i].MatchupID
	}
	b, applied, err := RebuildFromLog(c, log)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(applied) != len(log) {
		t.Fatalf("applied %d, want %d", len(applied), len(log))
	}
	if !b.RoundComplete(RoundR1) {
		t.Fatal("R1 not complete after pair-fallback replay")
	}
}

func TestCurrentRoundPointerAfterRebuild(t *testing.T) {
	c := testCatalog(t)
	r := newTestRun(t, c)
	at := baseTime()

	// Nothing decided: R1 has populated undecided matchups.
	b, _, err := RebuildFromLog(c, nil)
	if err != nil {
		t.Fatalf("rebuild empty: %v", err)
	}
	if b.CurrentRound != RoundR1 {
		t.Fatalf("empty log pointer = %s, want R1", b.CurrentRound)
	}

	// Everything decided: pointer lands on the deepest populated round.
	for _, round := range []RoundID{RoundR1, RoundR2, RoundR3, RoundR4, RoundR5} {
		decideRound(t, c, r, round, &at)
	}
	b, _, err = RebuildFromLog(c, r.Events)
	if err != nil {
		t.Fatalf("rebuild full: %v", err)
	}
	if b.CurrentRound != RoundR5 {
		t.Fatalf("full log pointer = %s, want R5", b.CurrentRound)
	}
}
