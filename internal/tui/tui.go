// Package tui provides the Bubble Tea writing screen: the editor, the demon
// overlay, the history panel and the end-of-session summary.
package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/fakeyudi/storydemon/internal/config"
	"github.com/fakeyudi/storydemon/internal/demon"
	"github.com/fakeyudi/storydemon/internal/log"
	"github.com/fakeyudi/storydemon/internal/session"
	"github.com/fakeyudi/storydemon/internal/watch"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("88")).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("88"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	toastInfoStyle    = statusBarStyle.Foreground(lipgloss.Color("39")).Bold(true)
	toastSuccessStyle = statusBarStyle.Foreground(lipgloss.Color("82")).Bold(true)
	toastErrorStyle   = statusBarStyle.Foreground(lipgloss.Color("196")).Bold(true)

	demonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("217")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 3)

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	currentBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	// Selected row in the history list
	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))
)

const (
	// demonWidth is the outer width of the demon box, border included.
	demonWidth = 34
	// demonHeight is the usual outer height of the demon box.
	demonHeight = 4
	// chromeRows is title + status bar + help.
	chromeRows = 3
	// historyHeaderRows and historyRowLines lay out the history list.
	historyHeaderRows = 4
	historyRowLines   = 3
)

// Copier places text on the clipboard.
type Copier interface {
	Copy(text string) bool
}

// Options configures New and Run.
type Options struct {
	Store      *session.Store
	Config     config.Config
	ConfigPath string // watched for changes by Run when non-empty
	Clipboard  Copier
	Rand       *rand.Rand // nil = randomly seeded
}

// ── Messages ────────────

type (
	autosaveMsg       struct{}
	copyResultMsg     struct{ ok bool }
	copyResetMsg      struct{ seq int }
	toastExpiredMsg   struct{ id int }
	configReloadedMsg struct {
		cfg config.Config
		err error
	}
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type toast struct {
	id   int
	text string
	kind toastKind
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClear
)

// ── Model ────────────────────

// Model is the root Bubble Tea model. The store, scheduler, timers and
// editor are shared by pointer across model copies.
type Model struct {
	store  *session.Store
	sched  *demon.Scheduler
	timers *teaTimers
	editor *editor
	clip   Copier
	cfg    config.Config
	keys   keyMap
	help   help.Model
	list   viewport.Model

	width  int
	height int
	ready  bool

	// History panel
	histCursor int
	confirm    confirmKind
	confirmID  string

	toasts         []toast
	toastSeq       int
	copySeq        int
	persistFailing bool
}

// New creates the writing screen for store. The editor starts with the
// store's current text.
func New(opts Options) Model {
	timers := newTeaTimers()
	ed := newEditor()
	ed.SetValue(opts.Store.Text())

	schedOpts := []demon.Option{demon.WithFocusTarget(ed)}
	if opts.Rand != nil {
		schedOpts = append(schedOpts, demon.WithRand(opts.Rand))
	}

	return Model{
		store:  opts.Store,
		sched:  demon.NewScheduler(opts.Store, timers, opts.Config.Demon.Scheduler(), schedOpts...),
		timers: timers,
		editor: ed,
		clip:   opts.Clipboard,
		cfg:    opts.Config,
		keys:   defaultKeyMap(),
		help:   help.New(),
		list:   viewport.New(0, 0),
	}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd {
	m.sched.Start()
	return tea.Batch(
		m.timers.drain(),
		textarea.Blink,
		m.autosaveTick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.handle(msg)}
	cmds = append(cmds, m.notePersistence())
	cmds = append(cmds, m.timers.drain())
	cmds = append(cmds, m.editor.drain()...)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	var body string
	if m.store.ShowHistory() {
		body = m.list.View()
	} else {
		body = m.editor.View()
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, m.titleBar(), body, m.statusBar(), m.helpBar())

	switch {
	case m.store.ShowSummary():
		box := m.summaryView()
		w, h := lipgloss.Size(box)
		screen = overlay(screen, box, (m.width-w)/2, (m.height-h)/2)
	case !m.store.ShowHistory():
		if d := m.store.CurrentDemon(); d != nil {
			screen = overlay(screen, m.demonBox(d), int(d.X), int(d.Y))
		}
	}
	return screen
}

// ── Update handlers ───────────────

func (m *Model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil

	case timerMsg:
		m.timers.fire(msg.id)
		return nil

	case autosaveMsg:
		if strings.TrimSpace(m.store.Text()) != "" {
			m.store.SaveToHistory()
			log.Debug("autosaved session %s", m.store.CurrentSessionID())
		}
		return m.autosaveTick()

	case copyResultMsg:
		if !msg.ok {
			return m.pushToast("Copy failed. Select the text and copy it manually.", toastError)
		}
		m.store.SetCopySuccess(true)
		m.copySeq++
		seq := m.copySeq
		return tea.Tick(m.cfg.Game.CopyFeedback, func(time.Time) tea.Msg { return copyResetMsg{seq: seq} })

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.store.SetCopySuccess(false)
		}
		return nil

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.id == msg.id {
				m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
				break
			}
		}
		return nil

	case configReloadedMsg:
		if msg.err != nil {
			log.Warn("config reload failed: %v", msg.err)
			return m.pushToast("Config not reloaded: "+msg.err.Error(), toastError)
		}
		m.cfg = msg.cfg
		m.sched.Configure(msg.cfg.Demon.Scheduler())
		log.Info("config reloaded")
		return m.pushToast("Config reloaded", toastInfo)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.editor.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		if strings.TrimSpace(m.store.Text()) != "" {
			m.store.SaveToHistory()
		}
		m.sched.Stop()
		return tea.Quit
	}

	switch {
	case m.store.ShowSummary():
		if key.Matches(msg, m.keys.Continue) {
			return m.closeSummary()
		}
		return nil
	case m.store.ShowHistory():
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Finish):
		m.finish()
		return nil
	case key.Matches(msg, m.keys.History):
		m.openHistory()
		return nil
	case key.Matches(msg, m.keys.New):
		m.newSession()
		return m.pushToast("New session started", toastInfo)
	case key.Matches(msg, m.keys.Copy):
		return m.copyText()
	case key.Matches(msg, m.keys.Squash):
		m.sched.Squash(m.editor.Cursor())
		return nil
	}

	before := m.editor.Value()
	cmd := m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.store.SetText(after)
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if m.store.ShowSummary() || m.store.ShowHistory() {
		return
	}
	d := m.store.CurrentDemon()
	if d == nil {
		return
	}
	x, y := int(d.X), int(d.Y)
	w, h := lipgloss.Size(m.demonBox(d))
	if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
		return
	}
	cursor := m.editor.Cursor()
	m.editor.Blur()
	m.sched.Squash(cursor)
}

// finish saves the session, stops spawning and shows the summary.
func (m *Model) finish() {
	m.store.SaveToHistory()
	m.sched.Stop()
	m.store.SetCurrentDemon(nil)
	m.store.SetShowSummary(true)
	m.editor.Blur()
	sum := m.store.Summary()
	log.Info("session finished: %d words, %d demons, score %d", sum.WordCount, sum.DemonCount, sum.TotalScore)
}

func (m *Model) closeSummary() tea.Cmd {
	m.store.SetShowSummary(false)
	m.newSession()
	return m.pushToast("Session saved! Starting fresh.", toastSuccess)
}

func (m *Model) newSession() {
	m.store.StartNewSession()
	m.store.SetShowHistory(false)
	m.editor.SetValue("")
	m.editor.Focus()
	m.sched.Restart()
}

func (m *Model) copyText() tea.Cmd {
	text := m.store.Text()
	if strings.TrimSpace(text) == "" {
		return m.pushToast("Nothing to copy yet", toastInfo)
	}
	if m.clip == nil {
		return m.pushToast("Clipboard unavailable", toastError)
	}
	clip := m.clip
	return func() tea.Msg { return copyResultMsg{ok: clip.Copy(text)} }
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	bodyHeight := max(height-chromeRows, 1)
	m.editor.SetSize(width, bodyHeight, 1)
	m.sched.SetViewport(float64(max(width-demonWidth, 0)), float64(max(height-demonHeight, 0)))
	m.list.Width = width
	m.list.Height = bodyHeight
	m.help.Width = width
	m.refreshList()
}

func (m *Model) pushToast(text string, kind toastKind) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toasts = append(m.toasts, toast{id: id, text: text, kind: kind})
	return tea.Tick(m.cfg.Game.ToastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// notePersistence raises a toast when the store starts failing to persist.
func (m *Model) notePersistence() tea.Cmd {
	err := m.store.Err()
	if err == nil {
		m.persistFailing = false
		return nil
	}
	if m.persistFailing {
		return nil
	}
	m.persistFailing = true
	return m.pushToast("Could not save, changes are kept in memory only", toastError)
}

func (m Model) autosaveTick() tea.Cmd {
	return tea.Tick(m.cfg.Game.AutosaveInterval, func(time.Time) tea.Msg { return autosaveMsg{} })
}

// ── Rendering ────────────────────

func (m Model) titleBar() string {
	title := titleStyle.Render("👹 storydemon")
	stats := statsStyle.Render(fmt.Sprintf("%s words • %s demons squashed ",
		humanize.Comma(int64(m.store.WordCount())),
		humanize.Comma(int64(m.store.DemonCount())),
	))
	pad := max(m.width-lipgloss.Width(title)-lipgloss.Width(stats), 1)
	return title + statsStyle.Render(strings.Repeat(" ", pad)) + stats
}

func (m Model) statusBar() string {
	var text string
	style := statusBarStyle
	switch {
	case len(m.toasts) > 0:
		t := m.toasts[len(m.toasts)-1]
		text = t.text
		switch t.kind {
		case toastSuccess:
			style = toastSuccessStyle
		case toastError:
			style = toastErrorStyle
		default:
			style = toastInfoStyle
		}
	case m.store.CopySuccess():
		text = "Copied!"
		style = toastSuccessStyle
	case m.persistFailing:
		text = "⚠ storage unavailable"
		style = toastErrorStyle
	case m.store.CurrentSessionID() != "":
		text = "session " + shortID(m.store.CurrentSessionID())
	default:
		text = "new session"
	}
	return style.Width(m.width).Render(ansi.Truncate(text, max(m.width-2, 0), "…"))
}

func (m Model) helpBar() string {
	switch {
	case m.store.ShowSummary():
		return m.help.View(m.keys.summary())
	case m.store.ShowHistory() && m.confirm != confirmNone:
		return m.help.View(m.keys.confirm())
	case m.store.ShowHistory():
		return m.help.View(m.keys.history())
	default:
		return m.help.View(m.keys.writing())
	}
}

func (m Model) demonBox(d *demon.Position) string {
	return demonStyle.Width(demonWidth - 2).Render("👹 " + d.Comment)
}

func (m Model) summaryView() string {
	s := m.store.Summary()
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("Session complete") + "\n\n")
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", label)) + "  " + value + "\n")
	}
	row("Words written:", humanize.Comma(int64(s.WordCount)))
	row("Demons squashed:", humanize.Comma(int64(s.DemonCount)))
	row("Multiplier:", fmt.Sprintf("×%.1f", s.Multiplier))
	row("Total score:", humanize.Comma(int64(s.TotalScore)))
	sb.WriteString("\n" + dimStyle.Render("enter to start a new session"))
	return modalStyle.Render(sb.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the TUI and blocks until the user quits. When opts.ConfigPath
// is set, edits to that file are applied while the game runs.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.ConfigPath != "" {
		go func() {
			err := watch.File(ctx, opts.ConfigPath, watch.DefaultDebounce, func() {
				cfg, err := config.Load(opts.ConfigPath)
				p.Send(configReloadedMsg{cfg: cfg, err: err})
			})
			if err != nil {
				log.Warn("config watch stopped: %v", err)
			}
		}()
	}

	_, err := p.Run()
	return err
}
