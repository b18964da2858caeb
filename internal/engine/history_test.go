package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// archivedRun builds a minimal run with one decision at the given time, so
// ordering by last decision is controllable per entry.
func archivedRun(id string, decidedAt time.Time) *Run {
	return &Run{
		ID:        id,
		StartedAt: decidedAt.Add(-time.Hour),
		Bracket:   &Bracket{CurrentRound: RoundR1, Rounds: map[RoundID][]Matchup{}},
		Events: []DecisionEvent{{
			ID:     id + "-ev",
			Type:   EventMatchDecided,
			Round:  RoundR1,
			Points: 10,
			Time:   decidedAt,
		}},
	}
}

func TestHistoryRetentionCap(t *testing.T) {
	h := NewHistoryStore(nil, DefaultMaxRecent)
	at := baseTime()
	for i := 0; i < 25; i++ {
		at = at.Add(time.Minute)
		h.Archive(archivedRun(fmt.Sprintf("run-%02d", i), at), false, at)
	}
	require.Equal(t, 20, h.Len())

	// Oldest five were evicted; the newest survive.
	ids := make(map[string]bool)
	for _, r := range h.Runs() {
		ids[r.ID] = true
	}
	for i := 0; i < 5; i++ {
		assert.False(t, ids[fmt.Sprintf("run-%02d", i)], "run-%02d should be evicted", i)
	}
	assert.True(t, ids["run-24"])
}

func TestHistorySavedExemptFromCap(t *testing.T) {
	h := NewHistoryStore(nil, DefaultMaxRecent)
	at := baseTime()
	h.Archive(archivedRun("keeper", at), true, at)

	for i := 0; i < 20; i++ {
		at = at.Add(time.Minute)
		h.Archive(archivedRun(fmt.Sprintf("run-%02d", i), at), false, at)
	}
	require.Equal(t, 21, h.Len())

	var keeper *Run
	for _, r := range h.Runs() {
		if r.ID == "keeper" {
			keeper = r
		}
	}
	require.NotNil(t, keeper, "saved run evicted by recent churn")
	assert.True(t, keeper.Saved)
	assert.NotNil(t, keeper.SavedAt)
}

func TestHistoryNewestFirst(t *testing.T) {
	at := baseTime()
	runs := []*Run{
		archivedRun("old", at),
		archivedRun("new", at.Add(2*time.Hour)),
		archivedRun("mid", at.Add(time.Hour)),
	}
	h := NewHistoryStore(runs, 0)
	got := h.Runs()
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "old", got[2].ID)
}

func TestHistoryDedupeKeepsFirst(t *testing.T) {
	at := baseTime()
	first := archivedRun("dup", at.Add(time.Hour))
	second := archivedRun("dup", at)
	h := NewHistoryStore([]*Run{first, second, archivedRun("other", at)}, 0)
	require.Equal(t, 2, h.Len())
	assert.Same(t, first, h.Take("dup"))
}

func TestHistoryArchiveClones(t *testing.T) {
	at := baseTime()
	src := archivedRun("live", at)
	h := NewHistoryStore(nil, 0)
	h.Archive(src, false, at)

	src.Events[0].Points = 999
	stored := h.MostRecent()
	require.NotNil(t, stored)
	assert.Equal(t, 10, stored.Events[0].Points, "archive shares storage with the live run")
	assert.NotNil(t, stored.EndedAt)
}

func TestHistorySetSavedAndDelete(t *testing.T) {
	at := baseTime()
	h := NewHistoryStore([]*Run{archivedRun("a", at), archivedRun("b", at.Add(time.Minute))}, 0)

	h.SetSaved("a", true, at.Add(time.Hour))
	var a *Run
	for _, r := range h.Runs() {
		if r.ID == "a" {
			a = r
		}
	}
	require.NotNil(t, a)
	assert.True(t, a.Saved)
	require.NotNil(t, a.SavedAt)

	h.SetSaved("a", false, at.Add(2*time.Hour))
	assert.False(t, a.Saved)
	assert.Nil(t, a.SavedAt)

	h.Delete("a")
	assert.Equal(t, 1, h.Len())
	assert.Nil(t, h.Take("a"))
}

func TestHistoryPopMostRecent(t *testing.T) {
	at := baseTime()
	h := NewHistoryStore([]*Run{
		archivedRun("old", at),
		archivedRun("new", at.Add(time.Hour)),
	}, 0)

	got := h.PopMostRecent()
	require.NotNil(t, got)
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, 1, h.Len())

	h.Delete("old")
	assert.Nil(t, h.PopMostRecent())
}

func TestResumeCandidateWindow(t *testing.T) {
	at := baseTime()
	now := at.Add(DefaultResumeWindow - time.Minute)

	h := NewHistoryStore([]*Run{archivedRun("fresh", at)}, 0)
	cand := h.ResumeCandidate(DefaultResumeWindow, now)
	require.NotNil(t, cand)
	assert.Equal(t, "fresh", cand.Run.ID)
	assert.Equal(t, 1, cand.Decided)
	assert.True(t, cand.LastDecisionAt.Equal(at))

	// Past the window the same run is no longer offered.
	assert.Nil(t, h.ResumeCandidate(DefaultResumeWindow, at.Add(DefaultResumeWindow+time.Minute)))
}

func TestResumeCandidateSkipsSavedAndUntouched(t *testing.T) {
	at := baseTime()
	saved := archivedRun("saved", at.Add(2*time.Hour))
	saved.Saved = true
	untouched := archivedRun("untouched", at.Add(time.Hour))
	untouched.Events = nil
	h := NewHistoryStore([]*Run{saved, untouched, archivedRun("plain", at)}, 0)

	cand := h.ResumeCandidate(0, at.Add(3*time.Hour))
	require.NotNil(t, cand)
	assert.Equal(t, "plain", cand.Run.ID)

	h.Delete("plain")
	assert.Nil(t, h.ResumeCandidate(0, at.Add(3*time.Hour)), "saved and untouched runs must not be offered")
}