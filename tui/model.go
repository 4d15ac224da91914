package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"meetbot/session"
	"meetbot/types"
)

// State represents the watch client state machine
type State string

const (
	StateInput    State = "input"    // waiting for a meeting URL
	StateCreating State = "creating" // create request in flight
	StatePolling  State = "polling"  // session is polling bot status
	StateDone     State = "done"     // meeting ended, final result shown
	StateError    State = "error"    // persistent failure, polling stopped
)

// Model is the watch client state.
type Model struct {
	client  *RelayClient
	session *session.Session

	state State

	input  textinput.Model
	spin   spinner.Model
	attach string // pre-existing bot id to attach to, skips the input state

	botID      string
	phase      types.Phase
	statusText string
	recordings []types.Recording

	transient error // last single-tick poll failure; status stays on screen
	err       error // persistent, shown as a banner

	logs []string
}

// NewModel creates the watch model. When attachBotID is non-empty the input
// step is skipped and polling starts on that bot immediately.
func NewModel(client *RelayClient, sess *session.Session, attachBotID string) Model {
	ti := textinput.New()
	ti.Placeholder = "https://zoom.us/j/123456789"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		client:  client,
		session: sess,
		state:   StateInput,
		input:   ti,
		spin:    sp,
		attach:  attachBotID,
		phase:   types.PhaseUnknown,
	}
	if attachBotID != "" {
		m.state = StatePolling
		m.botID = attachBotID
		m.statusText = "Attaching to bot " + attachBotID + "..."
	}
	return m
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		waitForUpdate(m.session.Updates()),
	}
	if m.attach != "" {
		m.session.Start(m.attach)
	} else {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// addLog keeps a short tail of recent activity.
func (m Model) addLog(msg string) Model {
	entry := fmt.Sprintf("%s %s", time.Now().Format("15:04:05"), msg)
	m.logs = append(m.logs, entry)
	if len(m.logs) > 8 {
		m.logs = m.logs[len(m.logs)-8:]
	}
	return m
}
