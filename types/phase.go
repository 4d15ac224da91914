package types

// Phase is the normalized lifecycle stage of a bot's meeting participation,
// derived from the provider's raw status string.
type Phase string

const (
	PhaseRequested Phase = "requested"
	PhaseJoining   Phase = "joining"
	PhaseJoined    Phase = "joined"
	PhaseEnded     Phase = "ended"
	PhaseUnknown   Phase = "unknown"
)

// ParsePhase maps a raw provider status to a Phase. The provider reports
// "left" and "ended" interchangeably for a finished meeting; both normalize
// to PhaseEnded. Unrecognized statuses map to PhaseUnknown, which keeps
// polling alive rather than treating a new provider status as terminal.
func ParsePhase(status string) Phase {
	switch status {
	case "requested":
		return PhaseRequested
	case "joining":
		return PhaseJoining
	case "joined":
		return PhaseJoined
	case "left", "ended":
		return PhaseEnded
	default:
		return PhaseUnknown
	}
}

// Terminal reports whether the phase ends a bot's lifecycle. Only PhaseEnded
// is terminal; PhaseUnknown is not, so polling continues through statuses the
// provider adds later.
func (p Phase) Terminal() bool {
	return p == PhaseEnded
}

// Text returns the human-readable status line shown to users for this phase.
func (p Phase) Text() string {
	switch p {
	case PhaseRequested:
		return "Bot requested, waiting for the meeting..."
	case PhaseJoining:
		return "Bot is joining the meeting..."
	case PhaseJoined:
		return "Bot has joined and is recording"
	case PhaseEnded:
		return "Meeting ended, recording is being processed"
	default:
		return "Status: unknown"
	}
}
