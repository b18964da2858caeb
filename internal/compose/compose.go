// Package compose builds the social post announcing a decision and the
// browser intent URL that pre-fills it.
package compose

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/everyride/marchmagic/internal/engine"
)

const intentBase = "https://twitter.com/intent/tweet"

// PostInput carries everything the composer needs about one decision. The
// attraction number is the running decision count including this one, and
// the matchup number is 1-based within its round.
type PostInput struct {
	AttractionNumber int
	Round            engine.RoundID
	MatchupNumber    int
	WinnerID         string
	LoserID          string
	Points           int
	TotalPoints      int
	DecidedAt        time.Time
	Settings         engine.Settings
}

// DecisionPost renders the full post text: the decision block, then the tags
// block and fundraising link, each separated by a blank line when present.
func DecisionPost(c *engine.Catalog, in PostInput) string {
	roundNum := strings.TrimPrefix(string(in.Round), "R")
	base := fmt.Sprintf("Attraction %d. %s at %s\n(Round %s Matchup %d vs %s)\nThis ride: %d points\nTotal today: %d points",
		in.AttractionNumber,
		c.ShortName(in.WinnerID),
		FormatTime12(in.DecidedAt),
		roundNum,
		in.MatchupNumber,
		c.ShortName(in.LoserID),
		in.Points,
		in.TotalPoints,
	)

	tags := strings.TrimSpace(in.Settings.TagsText)
	link := strings.TrimSpace(in.Settings.FundraisingLink)
	var tail string
	if tags != "" {
		tail += "\n\n" + tags
	}
	if link != "" {
		if tail != "" {
			tail += "\n" + link
		} else {
			tail += "\n\n" + link
		}
	}
	return base + tail
}

// PostForEvent composes the post for an already-recorded event, deriving the
// counters from the run's log and bracket.
func PostForEvent(c *engine.Catalog, run *engine.Run, ev engine.DecisionEvent) string {
	number := 0
	for _, e := range run.Events {
		if e.Type != engine.EventMatchDecided {
			continue
		}
		number++
		if e.ID == ev.ID {
			break
		}
	}
	matchupNumber := 1
	for i, m := range run.Bracket.Rounds[ev.Round] {
		if m.ID == ev.MatchupID {
			matchupNumber = i + 1
			break
		}
	}
	total := 0
	for _, e := range run.Events {
		if e.Type != engine.EventMatchDecided {
			continue
		}
		total += e.Points
		if e.ID == ev.ID {
			break
		}
	}
	return DecisionPost(c, PostInput{
		AttractionNumber: number,
		Round:            ev.Round,
		MatchupNumber:    matchupNumber,
		WinnerID:         ev.WinnerID,
		LoserID:          ev.LoserID,
		Points:           ev.Points,
		TotalPoints:      total,
		DecidedAt:        ev.Time,
		Settings:         run.Settings,
	})
}

// IntentURL wraps the post text in the tweet intent link.
func IntentURL(text string) string {
	u, _ := url.Parse(intentBase)
	q := u.Query()
	q.Set("text", strings.TrimSpace(text))
	u.RawQuery = q.Encode()
	return u.String()
}

// FormatTime12 renders a local 12-hour clock time without a leading zero.
func FormatTime12(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatDateShort renders a compact date for history rows and the resume card.
func FormatDateShort(t time.Time) string {
	return t.Format("Jan 2")
}
