package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"meetbot/session"
)

// createBot creates a command that submits the meeting URL to the relay.
func createBot(client *RelayClient, meetingURL string) tea.Cmd {
	return func() tea.Msg {
		bot, err := client.CreateBot(context.Background(), meetingURL)
		return botCreatedMsg{Bot: bot, Err: err}
	}
}

// waitForUpdate creates a command that blocks on the next session update.
// The Update handler re-issues it after every message, keeping exactly one
// reader on the channel.
func waitForUpdate(updates <-chan session.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return sessionUpdateMsg(u)
	}
}
