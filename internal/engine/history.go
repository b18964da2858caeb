package engine

import (
	"sort"
	"time"
)

// DefaultMaxRecent caps the unsaved portion of history.
const DefaultMaxRecent = 20

// DefaultResumeWindow bounds how old a run's last decision may be for the
// resume prompt to offer it.
const DefaultResumeWindow = 36 * time.Hour

// HistoryStore holds archived runs, partitioned into saved (kept
// indefinitely) and recent (bounded, oldest evicted first). Entries are
// keyed by run id and de-duplicated on insert.
type HistoryStore struct {
	runs      []*Run
	maxRecent int
}

// NewHistoryStore wraps an existing archive list. maxRecent <= 0 selects the
// default cap. The list is normalized immediately.
func NewHistoryStore(runs []*Run, maxRecent int) *HistoryStore {
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	h := &HistoryStore{runs: runs, maxRecent: maxRecent}
	h.normalize()
	return h
}

// Runs returns the normalized archive, newest decision first.
func (h *HistoryStore) Runs() []*Run { return h.runs }

func (h *HistoryStore) Len() int { return len(h.runs) }

// normalize de-dupes by id (first occurrence wins), splits saved from
// recent, truncates recent to the cap, then re-sorts the merged list
// descending by last-decision time. Sorting is stable, so insertion order
// breaks ties deterministically.
func (h *HistoryStore) normalize() {
	seen := make(map[string]bool, len(h.runs))
	var saved, recent []*Run
	for _, r := range h.runs {
		if r == nil || r.ID == "" || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		if r.Saved {
			saved = append(saved, r)
		} else {
			recent = append(recent, r)
		}
	}
	if len(recent) > h.maxRecent {
		recent = recent[:h.maxRecent]
	}
	merged := append(saved, recent...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LastDecisionAt().After(merged[j].LastDecisionAt())
	})
	h.runs = merged
}

// Archive clones the run, stamps it, and inserts it at the front of the
// archive before re-normalizing.
func (h *HistoryStore) Archive(run *Run, saved bool, now time.Time) {
	if run == nil || run.ID == "" {
		return
	}
	entry := run.Clone()
	ts := now.UTC()
	if entry.EndedAt == nil {
		entry.EndedAt = &ts
	}
	entry.Saved = saved
	if saved && entry.SavedAt == nil {
		entry.SavedAt = &ts
	}
	h.runs = append([]*Run{entry}, h.runs...)
	h.normalize()
}

// SetSaved toggles the saved flag on an entry, moving it between the saved
// and recent partitions.
func (h *HistoryStore) SetSaved(id string, saved bool, now time.Time) {
	ts := now.UTC()
	for _, r := range h.runs {
		if r.ID != id {
			continue
		}
		r.Saved = saved
		if saved && r.SavedAt == nil {
			r.SavedAt = &ts
		}
		if !saved {
			r.SavedAt = nil
		}
	}
	h.normalize()
}

// Delete removes an entry by id.
func (h *HistoryStore) Delete(id string) {
	kept := h.runs[:0]
	for _, r := range h.runs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	h.runs = kept
	h.normalize()
}

// MostRecent returns the entry (saved or recent) with the newest last
// decision, or nil for an empty archive.
func (h *HistoryStore) MostRecent() *Run {
	var best *Run
	for _, r := range h.runs {
		if best == nil || r.LastDecisionAt().After(best.LastDecisionAt()) {
			best = r
		}
	}
	return best
}

// PopMostRecent removes and returns MostRecent().
func (h *HistoryStore) PopMostRecent() *Run {
	best := h.MostRecent()
	if best == nil {
		return nil
	}
	h.Delete(best.ID)
	return best
}

// Take removes and returns the entry with the given id, or nil.
func (h *HistoryStore) Take(id string) *Run {
	for _, r := range h.runs {
		if r.ID == id {
			h.Delete(id)
			return r
		}
	}
	return nil
}

// ResumeCandidate describes the run the start page may offer to resume.
type ResumeCandidate struct {
	Run            *Run
	LastDecisionAt time.Time
	Decided        int
}

// ResumeCandidate picks the most recently decided unsaved run, provided it
// has at least one decision and that decision falls within the window.
// Untouched runs have nothing to continue; saved runs stay in the archive;
// older runs remain visible in history but are not offered, to avoid
// reviving long-abandoned sessions.
func (h *HistoryStore) ResumeCandidate(window time.Duration, now time.Time) *ResumeCandidate {
	if window <= 0 {
		window = DefaultResumeWindow
	}
	var best *Run
	for _, r := range h.runs {
		if r.Saved || len(r.Events) == 0 {
			continue
		}
		if best == nil || r.LastDecisionAt().After(best.LastDecisionAt()) {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	last := best.LastDecisionAt()
	if now.Sub(last) > window {
		return nil
	}
	return &ResumeCandidate{
		Run:            best,
		LastDecisionAt: last,
		Decided:        DecisionsCount(best.Events),
	}
}
