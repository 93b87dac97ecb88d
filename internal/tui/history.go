package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/fakeyudi/storydemon/internal/session"
)

func (m *Model) openHistory() {
	m.store.SetShowHistory(true)
	m.confirm = confirmNone
	m.histCursor = 0
	for i, h := range m.store.History() {
		if h.ID == m.store.CurrentSessionID() {
			m.histCursor = i
			break
		}
	}
	m.editor.Blur()
	m.list.GotoTop()
	m.refreshList()
}

func (m *Model) closeHistory() {
	m.store.SetShowHistory(false)
	m.confirm = confirmNone
	m.editor.Focus()
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	defer m.refreshList()

	if m.confirm != confirmNone {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.applyConfirm()
		case key.Matches(msg, m.keys.Cancel):
			m.confirm = confirmNone
		}
		return nil
	}

	entries := m.store.History()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeHistory()
	case key.Matches(msg, m.keys.Up):
		m.histCursor = max(m.histCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.histCursor = min(m.histCursor+1, max(len(entries)-1, 0))
	case key.Matches(msg, m.keys.Load):
		if len(entries) == 0 {
			return nil
		}
		m.store.LoadFromHistory(entries[m.histCursor].ID)
		m.confirm = confirmNone
		m.editor.SetValue(m.store.Text())
		m.editor.Focus()
		m.sched.Restart()
		return m.pushToast("Session loaded", toastInfo)
	case key.Matches(msg, m.keys.Delete):
		if len(entries) > 0 {
			m.confirm = confirmDelete
			m.confirmID = entries[m.histCursor].ID
		}
	case key.Matches(msg, m.keys.Clear):
		if len(entries) > 0 {
			m.confirm = confirmClear
		}
	case key.Matches(msg, m.keys.NewHist):
		m.newSession()
		return m.pushToast("New session started", toastInfo)
	}
	return nil
}

func (m *Model) applyConfirm() tea.Cmd {
	kind := m.confirm
	m.confirm = confirmNone

	switch kind {
	case confirmDelete:
		active := m.confirmID == m.store.CurrentSessionID()
		m.store.DeleteFromHistory(m.confirmID)
		if active {
			m.editor.SetValue("")
		}
		m.confirmID = ""
		m.histCursor = min(m.histCursor, max(len(m.store.History())-1, 0))
		return m.pushToast("Session deleted", toastInfo)
	case confirmClear:
		m.store.ClearHistory()
		m.editor.SetValue("")
		m.histCursor = 0
		return m.pushToast("History cleared", toastInfo)
	}
	return nil
}

// refreshList re-renders the history panel into the list viewport and keeps
// the selected row in view.
func (m *Model) refreshList() {
	if !m.ready {
		return
	}
	entries := m.store.History()
	width := max(m.width-2, 10)

	var sb strings.Builder
	sb.WriteString(sectionHeader.Render(fmt.Sprintf("📜 History (%d/%d)", len(entries), session.MaxHistory)) + "\n")
	switch m.confirm {
	case confirmDelete:
		sb.WriteString(confirmStyle.Render("Delete this session? y/n") + "\n")
	case confirmClear:
		sb.WriteString(confirmStyle.Render("Delete ALL saved sessions? y/n") + "\n")
	default:
		sb.WriteString(dimStyle.Render("Your last sessions, newest first.") + "\n")
	}
	sb.WriteString(dimStyle.Render(strings.Repeat("─", width)) + "\n\n")

	if len(entries) == 0 {
		sb.WriteString(dimStyle.Render("  (no saved sessions yet)") + "\n")
	}

	current := m.store.CurrentSessionID()
	for i, e := range entries {
		row := "  " + ansi.Truncate(snippet(e.Text), width-4, "…")
		if i == m.histCursor {
			row = selectedRowStyle.Width(width).Render(row)
		}
		meta := fmt.Sprintf("    %s words • %s demons • %s",
			humanize.Comma(int64(e.WordCount)),
			humanize.Comma(int64(e.DemonCount)),
			humanize.Time(e.LastModified),
		)
		line := timeStyle.Render(meta)
		if e.ID == current {
			line += "  " + currentBadgeStyle.Render("● current")
		}
		sb.WriteString(row + "\n" + line + "\n\n")
	}
	m.list.SetContent(sb.String())

	top := historyHeaderRows + m.histCursor*historyRowLines
	switch {
	case top < m.list.YOffset:
		m.list.SetYOffset(top)
	case top+historyRowLines > m.list.YOffset+m.list.Height:
		m.list.SetYOffset(top + historyRowLines - m.list.Height)
	}
}

// snippet is the first non-blank line of text.
func snippet(text string) string {
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return "(empty)"
}
