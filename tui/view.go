package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎥 meetbot watch"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(InfoStyle.Render("Paste a meeting URL and press enter:"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case StateCreating:
		b.WriteString(m.spin.View())
		b.WriteString(StatusStyle.Render(" Sending the bot into the meeting..."))
		b.WriteString("\n")
	case StatePolling:
		b.WriteString(m.spin.View())
		b.WriteString(StatusStyle.Render(" " + m.statusText))
		b.WriteString("\n")
	case StateDone:
		b.WriteString(HighlightStyle.Render("✅ " + m.statusText))
		b.WriteString("\n")
	case StateError:
		b.WriteString(BannerStyle.Render("✖ " + m.statusText))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(ErrorStyle.Render(m.err.Error()))
			b.WriteString("\n")
		}
	}

	if m.botID != "" {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Bot ID: " + m.botID))
		b.WriteString("\n")
	}

	if m.transient != nil {
		b.WriteString(InfoStyle.Render("(last poll failed, retrying: " + m.transient.Error() + ")"))
		b.WriteString("\n")
	}

	if len(m.recordings) > 0 {
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(m.formatRecordings()))
		b.WriteString("\n")
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, entry := range m.logs {
			b.WriteString(InfoStyle.Render("  " + entry))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Press q or Ctrl+C to quit"))
	b.WriteString("\n")

	return b.String()
}

// formatRecordings renders the recordings list for display.
func (m Model) formatRecordings() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Recordings"))
	b.WriteString("\n\n")

	for _, rec := range m.recordings {
		line := fmt.Sprintf("%s  [%s]", rec.ID, rec.Status)
		if rec.Duration > 0 {
			line += fmt.Sprintf("  %dm%02ds", rec.Duration/60, rec.Duration%60)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if rec.DownloadURL != "" {
			b.WriteString(InfoStyle.Render("  " + rec.DownloadURL))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
