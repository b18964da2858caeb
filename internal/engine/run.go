package engine

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// EventMatchDecided is the only event type the decision log carries.
const EventMatchDecided = "match_decided"

var (
	ErrNoBracket       = errors.New("run has no bracket")
	ErrUnknownMatchup  = errors.New("matchup not found")
	ErrMatchupNotReady = errors.New("matchup does not have both participants yet")
	ErrAlreadyDecided  = errors.New("matchup already decided; undo first")
	ErrNotDecided      = errors.New("matchup has no decision to undo")
	ErrNotInMatchup    = errors.New("entry is not part of this matchup")
)

// DecisionEvent is an immutable log record. The points value is frozen at
// decision time so historical totals survive catalog changes.
type DecisionEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Round     RoundID   `json:"roundId"`
	MatchupID string    `json:"matchId"`
	WinnerID  string    `json:"winnerId"`
	LoserID   string    `json:"loserId"`
	Points    int       `json:"points"`
	Time      time.Time `json:"timeISO"`
}

// Settings holds free-form run settings; the engine never inspects them.
type Settings struct {
	TagsText        string `json:"tagsText"`
	FundraisingLink string `json:"fundraisingLink"`
}

// Run is the aggregate root: one active bracket run. The decision log is the
// durable source of truth; the bracket is a derived cache of it.
type Run struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"startedAt"`
	Settings  Settings        `json:"settings"`
	Bracket   *Bracket        `json:"bracket"`
	Events    []DecisionEvent `json:"events"`

	// Archival stamps, set when the run moves to history.
	EndedAt *time.Time `json:"endedAt,omitempty"`
	Saved   bool       `json:"saved,omitempty"`
	SavedAt *time.Time `json:"savedAt,omitempty"`
}

// NewRun seeds a fresh run from the catalog.
func NewRun(c *Catalog, settings Settings, now time.Time) (*Run, error) {
	b, err := SeedBracket(c)
	if err != nil {
		return nil, err
	}
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: now.UTC(),
		Settings:  settings,
		Bracket:   b,
		Events:    []DecisionEvent{},
	}, nil
}

// Clone deep-copies the run through its JSON form.
func (r *Run) Clone() *Run {
	raw, err := json.Marshal(r)
	if err != nil {
		cp := *r
		return &cp
	}
	var out Run
	if err := json.Unmarshal(raw, &out); err != nil {
		cp := *r
		return &cp
	}
	return &out
}

// LastDecisionAt is the timestamp of the newest decision, or the run start
// when nothing has been decided yet.
func (r *Run) LastDecisionAt() time.Time {
	if n := len(r.Events); n > 0 {
		return r.Events[n-1].Time
	}
	return r.StartedAt
}

// PickWinner records a decision for a matchup. The matchup must have both
// participants and no prior winner; changing a decision goes through Undo
// first. On success the event is appended to the log and the result is
// propagated downstream. On failure nothing changes.
func (r *Run) PickWinner(c *Catalog, round RoundID, matchupID, winnerID string, now time.Time) (DecisionEvent, error) {
	if r.Bracket == nil {
		return DecisionEvent{}, ErrNoBracket
	}
	meta, ok := MetaFor(round)
	if !ok {
		return DecisionEvent{}, errors.Errorf("unknown round %q", round)
	}
	m := r.Bracket.Matchup(round, matchupID)
	if m == nil {
		return DecisionEvent{}, ErrUnknownMatchup
	}
	if !m.Ready() {
		return DecisionEvent{}, ErrMatchupNotReady
	}
	if m.Decided() {
		return DecisionEvent{}, ErrAlreadyDecided
	}
	if !m.Has(winnerID) {
		return DecisionEvent{}, ErrNotInMatchup
	}

	winner, ok := c.Get(winnerID)
	if !ok {
		return DecisionEvent{}, errors.Errorf("entry %q not in catalog", winnerID)
	}
	loserID := m.Other(winnerID)
	decidedAt := now.UTC()

	m.Winner = winnerID
	m.Loser = loserID
	m.DecidedAt = &decidedAt

	ev := DecisionEvent{
		ID:        uuid.NewString(),
		Type:      EventMatchDecided,
		Round:     round,
		MatchupID: matchupID,
		WinnerID:  winnerID,
		LoserID:   loserID,
		Points:    PointsFor(winner, meta),
		Time:      decidedAt,
	}
	r.Events = append(r.Events, ev)

	r.Bracket.SyncDownstream()
	if r.Bracket.RoundComplete(round) {
		if next, ok := NextRound(round); ok {
			r.Bracket.CurrentRound = next
		} else {
			r.Bracket.CurrentRound = RoundR5
		}
	}
	return ev, nil
}

// Undo removes the decision for a matchup, drops its event(s) from the log
// and rebuilds the whole bracket by replay. The full rebuild is deliberate:
// undo is rare and user-initiated, so the stronger correctness path is
// affordable even if the in-memory bracket had drifted from the log.
func (r *Run) Undo(c *Catalog, round RoundID, matchupID string) (int, error) {
	if r.Bracket == nil {
		return 0, ErrNoBracket
	}
	m := r.Bracket.Matchup(round, matchupID)
	if m == nil {
		return 0, ErrUnknownMatchup
	}
	if !m.Decided() {
		return 0, ErrNotDecided
	}

	kept := r.Events[:0]
	for _, ev := range r.Events {
		if ev.Type == EventMatchDecided && ev.Round == round && ev.MatchupID == matchupID {
			continue
		}
		kept = append(kept, ev)
	}
	r.Events = kept

	return r.Rebuild(c)
}

// Rebuild replaces the bracket with a full replay of the decision log and
// prunes any orphaned events the replay could not apply, so the retained log
// always reproduces the bracket exactly. Returns the orphan count.
func (r *Run) Rebuild(c *Catalog) (int, error) {
	b, applied, err := RebuildFromLog(c, r.Events)
	if err != nil {
		return 0, err
	}
	orphans := len(r.Events) - len(applied)
	r.Bracket = b
	r.Events = applied
	return orphans, nil
}

// Reopen strips archival stamps so a history entry can become active again.
func (r *Run) Reopen() {
	r.EndedAt = nil
	r.Saved = false
	r.SavedAt = nil
	if r.Events == nil {
		r.Events = []DecisionEvent{}
	}
}
