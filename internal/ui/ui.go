package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/everyride/marchmagic/internal/compose"
	"github.com/everyride/marchmagic/internal/engine"
	"github.com/everyride/marchmagic/internal/store"
	"github.com/everyride/marchmagic/internal/util"
)

const (
	viewStart    = "start"
	viewBracket  = "bracket"
	viewHistory  = "history"
	viewSettings = "settings"
	viewRules    = "rules"
	viewPost     = "post"
)

const defaultTags = "#RideChallenge #MarchMagic"

type confirmDialog struct {
	active  bool
	title   string
	body    string
	confirm string
	accept  func(m *model)
}

type model struct {
	ctx     context.Context
	db      *store.DB
	states  *store.StateRepo
	catalog *engine.Catalog
	cfg     util.Config
	log     *zap.Logger

	active  *engine.Run
	history *engine.HistoryStore
	resume  *engine.ResumeCandidate

	view      string
	themeName string
	viewRound engine.RoundID
	cursor    int
	confirm   confirmDialog

	// settings editor
	tagsInput     textarea.Model
	linkInput     textinput.Model
	settingsFocus int

	// last composed post
	postText string
	postURL  string

	historyIndex  int
	rulesRendered string
	notice        string
	exportStatus  string

	width  int
	height int
}

func initialModel(ctx context.Context, db *store.DB, catalog *engine.Catalog, cfg util.Config, log *zap.Logger) model {
	if log == nil {
		log = zap.NewNop()
	}
	m := model{
		ctx:       ctx,
		db:        db,
		states:    store.NewStateRepo(db),
		catalog:   catalog,
		cfg:       cfg,
		log:       log,
		view:      viewStart,
		themeName: "catppuccin",
		viewRound: engine.RoundR1,
	}

	ta := textarea.New()
	ta.Placeholder = "Tags and hashtags appended to every post"
	ta.SetHeight(4)
	ta.CharLimit = 280
	m.tagsInput = ta

	ti := textinput.New()
	ti.Placeholder = "https://..."
	ti.CharLimit = 200
	m.linkInput = ti

	runs, err := m.states.LoadHistory(ctx)
	if err != nil {
		log.Warn("loading history failed", zap.Error(err))
	}
	m.history = engine.NewHistoryStore(runs, cfg.MaxRecentHistory)

	active, err := m.states.LoadActiveRun(ctx)
	if err != nil {
		log.Warn("loading active run failed", zap.Error(err))
	}
	if active != nil {
		// Replay the log so a hand-edited or stale bracket cannot disagree
		// with the events.
		orphans, rerr := active.Rebuild(catalog)
		if rerr != nil {
			log.Warn("active run replay failed, discarding", zap.Error(rerr))
			active = nil
		} else if orphans > 0 {
			log.Warn("dropped orphaned decisions during replay", zap.Int("count", orphans))
		}
	}
	if active != nil {
		m.active = active
		m.view = viewBracket
		m.viewRound = active.Bracket.CurrentRound
	} else {
		m.refreshResume()
	}
	return m
}

func (m *model) refreshResume() {
	window := engine.DefaultResumeWindow
	if m.cfg.ResumeWindowHours > 0 {
		window = time.Duration(m.cfg.ResumeWindowHours) * time.Hour
	}
	m.resume = m.history.ResumeCandidate(window, time.Now())
}

func (m *model) saveActive() {
	if err := m.states.SaveActiveRun(m.ctx, m.active); err != nil {
		m.log.Warn("persisting active run failed", zap.Error(err))
		m.notice = "warning: save failed"
	}
}

func (m *model) persistHistory() {
	if err := m.states.SaveHistory(m.ctx, m.history.Runs()); err != nil {
		m.log.Warn("persisting history failed", zap.Error(err))
		m.notice = "warning: history save failed"
	}
}

// startNewRun seeds a fresh bracket with default settings and enters the
// bracket page. Tags and link are editable afterwards in settings.
func (m *model) startNewRun() {
	run, err := engine.NewRun(m.catalog, engine.Settings{TagsText: defaultTags}, time.Now())
	if err != nil {
		m.notice = "start failed: " + err.Error()
		return
	}
	m.active = run
	m.viewRound = engine.RoundR1
	m.cursor = 0
	m.postText = ""
	m.postURL = ""
	m.saveActive()
	m.view = viewBracket
	m.log.Info("run started", zap.String("run_id", run.ID))
}

// resumeCandidateRun pulls the offered run out of history and makes it
// active again.
func (m *model) resumeCandidateRun() {
	if m.resume == nil {
		return
	}
	run := m.history.Take(m.resume.Run.ID)
	if run == nil {
		m.resume = nil
		return
	}
	run.Reopen()
	if orphans, err := run.Rebuild(m.catalog); err != nil {
		m.notice = "resume failed: " + err.Error()
		m.history.Archive(run, false, time.Now())
		return
	} else if orphans > 0 {
		m.log.Warn("dropped orphaned decisions on resume", zap.Int("count", orphans))
	}
	m.active = run
	m.resume = nil
	m.viewRound = run.Bracket.CurrentRound
	m.cursor = 0
	m.persistHistory()
	m.saveActive()
	m.view = viewBracket
	m.log.Info("run resumed", zap.String("run_id", run.ID))
}

func (m *model) resumeFromHistory(id string) {
	run := m.history.Take(id)
	if run == nil {
		return
	}
	if m.active != nil {
		// Only one active run at a time; the current one goes back to
		// history unsaved.
		m.history.Archive(m.active, false, time.Now())
	}
	run.Reopen()
	if _, err := run.Rebuild(m.catalog); err != nil {
		m.notice = "resume failed: " + err.Error()
		m.history.Archive(run, false, time.Now())
		m.persistHistory()
		return
	}
	m.active = run
	m.viewRound = run.Bracket.CurrentRound
	m.cursor = 0
	m.persistHistory()
	m.saveActive()
	m.view = viewBracket
}

// archiveActive ends the active run into history.
func (m *model) archiveActive(saved bool) {
	if m.active == nil {
		return
	}
	id := m.active.ID
	m.history.Archive(m.active, saved, time.Now())
	m.active = nil
	m.persistHistory()
	if err := m.states.ClearActiveRun(m.ctx); err != nil {
		m.log.Warn("clearing active run failed", zap.Error(err))
	}
	m.refreshResume()
	m.view = viewStart
	m.log.Info("run archived", zap.String("run_id", id), zap.Bool("saved", saved))
}

func (m *model) currentRoundMatchups() []engine.Matchup {
	if m.active == nil {
		return nil
	}
	return m.active.Bracket.Rounds[m.viewRound]
}

func (m *model) clampCursor() {
	n := len(m.currentRoundMatchups())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// pick decides the matchup under the cursor, persists, and composes the post.
func (m *model) pick(slot int) {
	mus := m.currentRoundMatchups()
	if m.cursor >= len(mus) {
		return
	}
	mu := mus[m.cursor]
	winner := mu.A
	if slot == 2 {
		winner = mu.B
	}
	if winner == "" {
		return
	}
	ev, err := m.active.PickWinner(m.catalog, m.viewRound, mu.ID, winner, time.Now())
	if err != nil {
		switch err {
		case engine.ErrAlreadyDecided:
			m.notice = "already decided, undo first"
		case engine.ErrMatchupNotReady:
			m.notice = "matchup not ready yet"
		default:
			m.notice = err.Error()
		}
		return
	}
	m.saveActive()
	m.postText = compose.PostForEvent(m.catalog, m.active, ev)
	m.postURL = compose.IntentURL(m.postText)
	m.view = viewPost
	m.log.Info("matchup decided",
		zap.String("round", string(ev.Round)),
		zap.String("winner", ev.WinnerID),
		zap.Int("points", ev.Points),
	)
}

func (m *model) undoUnderCursor() {
	mus := m.currentRoundMatchups()
	if m.cursor >= len(mus) {
		return
	}
	mu := mus[m.cursor]
	if !mu.Decided() {
		m.notice = "nothing to undo here"
		return
	}
	round := m.viewRound
	id := mu.ID
	m.confirm = confirmDialog{
		active:  true,
		title:   "Undo this decision?",
		body:    "This clears the winner for this matchup. Later rounds that depended on it will be reset too.",
		confirm: "Undo",
		accept: func(m *model) {
			orphans, err := m.active.Undo(m.catalog, round, id)
			if err != nil {
				m.notice = "undo failed: " + err.Error()
				return
			}
			if orphans > 0 {
				m.log.Warn("undo dropped dependent decisions", zap.Int("count", orphans))
			}
			m.saveActive()
			m.clampCursor()
			m.notice = "decision undone"
		},
	}
}

func (m *model) openSettings() {
	if m.active == nil {
		return
	}
	m.tagsInput.SetValue(m.active.Settings.TagsText)
	m.linkInput.SetValue(m.active.Settings.FundraisingLink)
	m.settingsFocus = 0
	m.tagsInput.Focus()
	m.linkInput.Blur()
	m.view = viewSettings
}

func (m *model) applySettings() {
	m.active.Settings.TagsText = strings.TrimSpace(m.tagsInput.Value())
	m.active.Settings.FundraisingLink = strings.TrimSpace(m.linkInput.Value())
	m.saveActive()
	m.notice = "settings saved"
	m.view = viewBracket
}

func (m *model) openRules() {
	if m.rulesRendered == "" {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(78))
		if err == nil {
			if out, rerr := renderer.Render(rulesMarkdown); rerr == nil {
				m.rulesRendered = out
			}
		}
		if m.rulesRendered == "" {
			m.rulesRendered = rulesMarkdown
		}
	}
	m.view = viewRules
}

// exportBracket writes a markdown snapshot of the whole bracket.
func (m *model) exportBracket() {
	if m.active == nil {
		m.exportStatus = "no-run"
		return
	}
	var b strings.Builder
	b.WriteString("# Ride Challenge Bracket\nRun: " + m.active.ID + "\n")
	b.WriteString("Started: " + m.active.StartedAt.Format(time.RFC1123) + "\n\n")
	for _, meta := range engine.Rounds {
		b.WriteString(fmt.Sprintf("## %s (x%d)\n", meta.Label, meta.Multiplier))
		for i, mu := range m.active.Bracket.Rounds[meta.ID] {
			a := placeholderName(m.catalog, mu.A)
			bn := placeholderName(m.catalog, mu.B)
			line := fmt.Sprintf("%d. %s vs %s", i+1, a, bn)
			if mu.Decided() {
				line += fmt.Sprintf(" -> %s", m.catalog.ShortName(mu.Winner))
				if mu.DecidedAt != nil {
					line += " at " + compose.FormatTime12(*mu.DecidedAt)
				}
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Total: %d points over %d/%d decisions\n",
		engine.TotalPoints(m.active.Events),
		engine.DecisionsCount(m.active.Events),
		engine.TotalMatchups,
	))
	dir := filepath.Join(os.Getenv("HOME"), ".marchmagic", "exports")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		m.exportStatus = "err-mkdir"
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("run_%s.md", m.active.ID))
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		m.exportStatus = "err-write"
		return
	}
	m.exportStatus = path
	m.notice = "exported to " + path
}

func placeholderName(c *engine.Catalog, id string) string {
	if id == "" {
		return "TBD"
	}
	return c.ShortName(id)
}

// tea.Model implementation ---------------------------------------------------

func (m model) Init() tea.Cmd { return textarea.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if m.confirm.active {
		switch k {
		case "enter", "y":
			accept := m.confirm.accept
			m.confirm = confirmDialog{}
			if accept != nil {
				accept(&m)
			}
		case "esc", "n", "q":
			m.confirm = confirmDialog{}
		}
		return m, nil
	}

	if m.view == viewSettings {
		return m.handleSettingsKey(msg)
	}

	switch k {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.view {
	case viewStart:
		switch k {
		case "1", "n":
			m.startNewRun()
		case "2", "r":
			m.resumeCandidateRun()
		case "3", "h":
			m.historyIndex = 0
			m.view = viewHistory
		case "4":
			m.openRules()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case viewBracket:
		switch k {
		case "left":
			if i := m.viewRound.Index(); i > 0 {
				m.viewRound = engine.Rounds[i-1].ID
				m.cursor = 0
			}
		case "right", "tab":
			if i := m.viewRound.Index(); i >= 0 && i < len(engine.Rounds)-1 {
				m.viewRound = engine.Rounds[i+1].ID
				m.cursor = 0
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.currentRoundMatchups())-1 {
				m.cursor++
			}
		case "1":
			m.pick(1)
		case "2":
			m.pick(2)
		case "u":
			m.undoUnderCursor()
		case "s":
			m.openSettings()
		case "h":
			m.historyIndex = 0
			m.view = viewHistory
		case "?":
			m.openRules()
		case "e":
			m.exportBracket()
		case "p":
			if m.postText != "" {
				m.view = viewPost
			}
		case "t":
			m.themeName = nextThemeName(m.themeName, 1)
		case "f":
			m.confirmFinish()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case viewHistory:
		switch k {
		case "up", "k":
			if m.historyIndex > 0 {
				m.historyIndex--
			}
		case "down", "j":
			if m.historyIndex < m.history.Len()-1 {
				m.historyIndex++
			}
		case "s":
			if r := m.historyEntry(); r != nil {
				m.history.SetSaved(r.ID, !r.Saved, time.Now())
				m.persistHistory()
				m.refreshResume()
			}
		case "d":
			if r := m.historyEntry(); r != nil {
				id := r.ID
				m.confirm = confirmDialog{
					active:  true,
					title:   "Delete this run?",
					body:    "The run and its decision log are removed permanently.",
					confirm: "Delete",
					accept: func(m *model) {
						m.history.Delete(id)
						m.persistHistory()
						m.refreshResume()
						if m.historyIndex >= m.history.Len() {
							m.historyIndex = m.history.Len() - 1
						}
						if m.historyIndex < 0 {
							m.historyIndex = 0
						}
					},
				}
			}
		case "enter":
			if r := m.historyEntry(); r != nil {
				m.resumeFromHistory(r.ID)
			}
		case "esc", "q":
			if m.active != nil {
				m.view = viewBracket
			} else {
				m.refreshResume()
				m.view = viewStart
			}
		}
		return m, nil

	case viewRules:
		switch k {
		case "esc", "q":
			if m.active != nil {
				m.view = viewBracket
			} else {
				m.view = viewStart
			}
		}
		return m, nil

	case viewPost:
		switch k {
		case "esc", "q", "enter":
			m.view = viewBracket
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewBracket
		return m, nil
	case "tab", "shift+tab":
		m.settingsFocus = 1 - m.settingsFocus
		if m.settingsFocus == 0 {
			m.tagsInput.Focus()
			m.linkInput.Blur()
		} else {
			m.tagsInput.Blur()
			m.linkInput.Focus()
		}
		return m, nil
	case "ctrl+s":
		m.applySettings()
		return m, nil
	case "enter":
		if m.settingsFocus == 1 {
			m.applySettings()
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.settingsFocus == 0 {
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	} else {
		m.linkInput, cmd = m.linkInput.Update(msg)
	}
	return m, cmd
}

func (m *model) historyEntry() *engine.Run {
	runs := m.history.Runs()
	if m.historyIndex < 0 || m.historyIndex >= len(runs) {
		return nil
	}
	return runs[m.historyIndex]
}

func (m *model) confirmFinish() {
	if m.active == nil {
		return
	}
	done := engine.DecisionsCount(m.active.Events)
	body := "The run moves to history and can be resumed later."
	if done < engine.TotalMatchups {
		body = fmt.Sprintf("Only %d of %d matchups are decided. The run moves to history and can be resumed later.", done, engine.TotalMatchups)
	}
	m.confirm = confirmDialog{
		active:  true,
		title:   "Finish this run?",
		body:    body,
		confirm: "Finish",
		accept:  func(m *model) { m.archiveActive(false) },
	}
}

// View rendering -------------------------------------------------------------

func (m model) View() string {
	var body string
	switch m.view {
	case viewStart:
		body = m.renderStart()
	case viewBracket:
		body = m.renderBracket()
	case viewHistory:
		body = m.renderHistory()
	case viewSettings:
		body = m.renderSettings()
	case viewRules:
		body = m.renderRules()
	case viewPost:
		body = m.renderPost()
	default:
		body = m.renderStart()
	}
	if m.confirm.active {
		body += "\n\n" + m.renderConfirm()
	}
	return body
}

func (m model) renderStart() string {
	p := paletteFor(m.themeName)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2).Width(56)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("MARCH MAGIC — RIDE CHALLENGE") + "\n\n")
	if m.resume != nil {
		label := compose.FormatDateShort(m.resume.LastDecisionAt) + " at " + compose.FormatTime12(m.resume.LastDecisionAt)
		b.WriteString(lipgloss.NewStyle().Foreground(p.Winner).Render("Resume available") + "\n")
		b.WriteString(fmt.Sprintf("Last decision %s, %d/%d decided\n\n", label, m.resume.Decided, engine.TotalMatchups))
		b.WriteString("[1] New Run\n[2] Resume\n[3] History\n[4] Rules\n\nQ Quit")
	} else {
		b.WriteString("[1] New Run\n[3] History\n[4] Rules\n\nQ Quit")
	}
	if m.notice != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(p.Warning).Render(m.notice))
	}
	return box.Render(b.String())
}

func (m model) renderBracket() string {
	if m.active == nil {
		return m.renderStart()
	}
	p := paletteFor(m.themeName)
	top := m.renderRoundBar(p)
	pill := m.renderCounterPill(p)
	cards := m.renderMatchups(p)
	bottom := lipgloss.NewStyle().Foreground(p.Muted).Render(
		"[up/down] matchup  [left/right] round  [1]/[2] pick winner  [U] undo  [S] settings  [H] history  [E] export  [F] finish  [?] rules  [Q] quit")
	if m.notice != "" {
		bottom = lipgloss.NewStyle().Foreground(p.Warning).Render(m.notice) + "\n" + bottom
	}
	return lipgloss.JoinVertical(lipgloss.Left, top+"  "+pill, cards, bottom)
}

func (m model) renderRoundBar(p palette) string {
	parts := make([]string, 0, len(engine.Rounds))
	for _, meta := range engine.Rounds {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted)
		if meta.ID == m.viewRound {
			st = st.Bold(true).Foreground(p.Background).Background(p.roundColor(meta.ID))
		} else if m.active.Bracket.RoundComplete(meta.ID) {
			st = st.Foreground(p.roundColor(meta.ID))
		}
		parts = append(parts, st.Render(meta.Label))
	}
	return strings.Join(parts, " ")
}

func (m model) renderCounterPill(p palette) string {
	pts := engine.TotalPoints(m.active.Events)
	done := engine.DecisionsCount(m.active.Events)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Background).
		Background(p.Accent).
		Padding(0, 1).
		Render(fmt.Sprintf("%d pts / %d of %d", pts, done, engine.TotalMatchups))
}

func (m model) renderMatchups(p palette) string {
	meta, _ := engine.MetaFor(m.viewRound)
	mus := m.active.Bracket.Rounds[m.viewRound]
	anyReady := false
	for _, mu := range mus {
		if mu.Ready() || mu.Decided() {
			anyReady = true
			break
		}
	}
	if len(mus) == 0 || !anyReady {
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2).
			Foreground(p.Muted).
			Render(fmt.Sprintf("%s is locked.\nComplete the earlier rounds to fill these matchups.", meta.Label))
		return card
	}

	var b strings.Builder
	for i, mu := range mus {
		b.WriteString(m.renderMatchupLine(p, meta, i, mu))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderMatchupLine(p palette, meta engine.RoundMeta, i int, mu engine.Matchup) string {
	cursor := "  "
	if i == m.cursor {
		cursor = lipgloss.NewStyle().Foreground(p.roundColor(meta.ID)).Render("> ")
	}
	a := placeholderName(m.catalog, mu.A)
	bn := placeholderName(m.catalog, mu.B)
	aStyle := lipgloss.NewStyle().Foreground(p.Text)
	bStyle := lipgloss.NewStyle().Foreground(p.Text)
	tail := ""
	switch {
	case mu.Decided():
		if mu.Winner == mu.A {
			aStyle = aStyle.Bold(true).Foreground(p.Winner)
			bStyle = bStyle.Faint(true).Foreground(p.Loser)
		} else {
			bStyle = bStyle.Bold(true).Foreground(p.Winner)
			aStyle = aStyle.Faint(true).Foreground(p.Loser)
		}
		if e, ok := m.catalog.Get(mu.Winner); ok {
			tail = fmt.Sprintf("  +%d", engine.PointsFor(e, meta))
		}
		if mu.DecidedAt != nil {
			tail += "  " + compose.FormatTime12(*mu.DecidedAt)
		}
	case !mu.Ready():
		aStyle = aStyle.Foreground(p.Muted)
		bStyle = bStyle.Foreground(p.Muted)
	}
	return fmt.Sprintf("%s%2d. %s vs %s%s",
		cursor, i+1, aStyle.Render(a), bStyle.Render(bn),
		lipgloss.NewStyle().Foreground(p.Muted).Render(tail))
}

func (m model) renderHistory() string {
	p := paletteFor(m.themeName)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("HISTORY") + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("[up/down] select  [Enter] resume  [S] toggle saved  [D] delete  [Esc] back") + "\n\n")
	runs := m.history.Runs()
	if len(runs) == 0 {
		b.WriteString("(no archived runs)\n")
		return b.String()
	}
	for i, r := range runs {
		cursor := "  "
		if i == m.historyIndex {
			cursor = "> "
		}
		mark := " "
		if r.Saved {
			mark = lipgloss.NewStyle().Foreground(p.Winner).Render("*")
		}
		last := r.LastDecisionAt()
		b.WriteString(fmt.Sprintf("%s%s %s %s  %d/%d decided  %d pts\n",
			cursor, mark,
			compose.FormatDateShort(last), compose.FormatTime12(last),
			engine.DecisionsCount(r.Events), engine.TotalMatchups,
			engine.TotalPoints(r.Events)))
	}
	return b.String()
}

func (m model) renderSettings() string {
	p := paletteFor(m.themeName)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2).Width(64)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("POST SETTINGS") + "\n\n")
	b.WriteString("Tags appended to every post:\n")
	b.WriteString(m.tagsInput.View() + "\n\n")
	b.WriteString("Fundraising link:\n")
	b.WriteString(m.linkInput.View() + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("[Tab] switch field  [Ctrl+S] save  [Esc] cancel"))
	return box.Render(b.String())
}

func (m model) renderRules() string {
	return m.rulesRendered + "\nEsc back"
}

func (m model) renderPost() string {
	p := paletteFor(m.themeName)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2).Width(70)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("POST DRAFT") + "\n\n")
	b.WriteString(m.postText + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Winner).Render(m.postURL) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(p.Muted).Render("Open the link in a browser to post. [Esc] back"))
	return box.Render(b.String())
}

func (m model) renderConfirm() string {
	p := paletteFor(m.themeName)
	box := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.Warning).Padding(1, 2).Width(60)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.confirm.title) + "\n\n")
	b.WriteString(m.confirm.body + "\n\n")
	b.WriteString(fmt.Sprintf("[Enter] %s  [Esc] cancel", m.confirm.confirm))
	return box.Render(b.String())
}
