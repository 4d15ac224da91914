package tui

import (
	"meetbot/session"
	"meetbot/types"
)

// Messages for the tea program

// botCreatedMsg is sent when the relay answered a create request.
type botCreatedMsg struct {
	Bot *types.Bot
	Err error
}

// sessionUpdateMsg wraps one observation from the polling session.
type sessionUpdateMsg session.Update
