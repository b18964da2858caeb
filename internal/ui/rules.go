package ui

// rulesMarkdown is rendered with glamour on the rules page.
const rulesMarkdown = `# Ride Challenge Rules

One park day, one 32-attraction single-elimination bracket.

## The bracket

- 32 attractions are seeded into 16 Round 1 matchups.
- Each winner advances; rounds halve to 8, 4, 2, and a final matchup.
- A matchup opens once both of its attractions are known.

## Deciding a matchup

- Ride both attractions, then pick the winner.
- The winner earns its base points times the round multiplier
  (Round 1 = x1 up to the final = x5). Higher seeds carry higher base
  points, so upsets pay.
- Every decision composes a post draft with the running total, your tags,
  and the fundraising link.

## Undo

Undoing a decision reopens the matchup. Any later matchup that depended on
the undone winner is reset as well; unrelated decisions keep their points.

## Runs

- A finished or abandoned run moves to history.
- The most recent unfinished run is offered for resume for 36 hours.
- Mark a run saved to keep it past the recent-history cap.
`
