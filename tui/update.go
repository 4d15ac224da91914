package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"meetbot/session"
	"meetbot/types"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case botCreatedMsg:
		return m.handleBotCreated(msg)
	case sessionUpdateMsg:
		return m.handleSessionUpdate(session.Update(msg))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.state == StateInput && msg.String() == "q" {
			// Let the user type URLs containing "q".
			break
		}
		m.session.Stop()
		return m, tea.Quit
	case "enter":
		if m.state != StateInput {
			return m, nil
		}
		meetingURL := strings.TrimSpace(m.input.Value())
		if meetingURL == "" {
			return m, nil
		}
		m.state = StateCreating
		m = m.addLog("Requesting a bot for " + meetingURL)
		return m, createBot(m.client, meetingURL)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleBotCreated processes the relay's answer to the create request.
func (m Model) handleBotCreated(msg botCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = StateError
		m.err = fmt.Errorf("failed to create bot: %w", msg.Err)
		return m, nil
	}

	m.state = StatePolling
	m.botID = msg.Bot.ID
	m.phase = msg.Bot.Phase()
	m.statusText = m.phase.Text()
	m = m.addLog("Bot created with id " + msg.Bot.ID)

	// One polling loop per bot: Start cancels any previous loop itself.
	m.session.Start(msg.Bot.ID)
	return m, nil
}

// handleSessionUpdate folds one polling observation into the UI state.
func (m Model) handleSessionUpdate(u session.Update) (tea.Model, tea.Cmd) {
	// Keep listening regardless of what this update carries.
	cmd := waitForUpdate(m.session.Updates())

	if u.BotID != m.botID {
		return m, cmd
	}

	if u.Transient {
		// A single failed poll: note it, keep the last status on screen.
		m.transient = u.Err
		m = m.addLog("Poll failed, retrying: " + u.Err.Error())
		return m, cmd
	}
	m.transient = nil

	if u.Err != nil {
		m.state = StateError
		m.err = u.Err
		m.statusText = u.StatusText
		return m, cmd
	}

	if u.Phase != m.phase {
		m = m.addLog(u.StatusText)
	}
	m.phase = u.Phase
	m.statusText = u.StatusText
	if len(u.Recordings) > 0 {
		m.recordings = u.Recordings
	}

	if u.Final && u.Phase == types.PhaseEnded {
		m.state = StateDone
		if len(m.recordings) == 0 {
			// Meeting over, the delayed recordings check is still pending.
			m.statusText = "Meeting ended, waiting for the recording..."
		}
	}
	return m, cmd
}
