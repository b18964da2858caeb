package engine

// PointsFor is the round-adjusted value of an entry: base points times the
// round multiplier. Exact integer arithmetic.
func PointsFor(e Entry, meta RoundMeta) int {
	base := e.BasePoints
	if base <= 0 {
		base = defaultBasePoints
	}
	mult := meta.Multiplier
	if mult <= 0 {
		mult = 1
	}
	return base * mult
}

// TotalPoints sums the frozen per-event points. Totals are derived from the
// log, not recomputed from the catalog, so they stay stable across sessions
// even if catalog data changes.
func TotalPoints(log []DecisionEvent) int {
	total := 0
	for _, ev := range log {
		if ev.Type != EventMatchDecided {
			continue
		}
		total += ev.Points
	}
	return total
}

// DecisionsCount is the number of recorded decisions, for the "N/31" display.
func DecisionsCount(log []DecisionEvent) int {
	n := 0
	for _, ev := range log {
		if ev.Type == EventMatchDecided {
			n++
		}
	}
	return n
}
