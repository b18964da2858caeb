package engine

// RoundID identifies one of the five bracket stages.
type RoundID string

const (
	RoundR1 RoundID = "R1"
	RoundR2 RoundID = "R2"
	RoundR3 RoundID = "R3"
	RoundR4 RoundID = "R4"
	RoundR5 RoundID = "R5"
)

// RoundMeta is static per-round data. Never mutated.
type RoundMeta struct {
	ID         RoundID
	Label      string
	Matchups   int
	Multiplier int
}

// Rounds lists the five stages in play order. Matchup counts halve each
// round; the multiplier is the 1-based round position.
var Rounds = [5]RoundMeta{
	{ID: RoundR1, Label: "Round 1", Matchups: 16, Multiplier: 1},
	{ID: RoundR2, Label: "Round 2", Matchups: 8, Multiplier: 2},
	{ID: RoundR3, Label: "Round 3", Matchups: 4, Multiplier: 3},
	{ID: RoundR4, Label: "Round 4", Matchups: 2, Multiplier: 4},
	{ID: RoundR5, Label: "Round 5", Matchups: 1, Multiplier: 5},
}

// TotalMatchups is the number of decidable matchups across all rounds.
const TotalMatchups = 31

// MetaFor returns the metadata for a round id.
func MetaFor(id RoundID) (RoundMeta, bool) {
	for _, r := range Rounds {
		if r.ID == id {
			return r, true
		}
	}
	return RoundMeta{}, false
}

// Index returns the 0-based position of the round, or -1 if unknown.
func (id RoundID) Index() int {
	for i, r := range Rounds {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// NextRound returns the round following id, if any.
func NextRound(id RoundID) (RoundID, bool) {
	i := id.Index()
	if i < 0 || i >= len(Rounds)-1 {
		return "", false
	}
	return Rounds[i+1].ID, true
}
