package domain

// EventKind tells which kind of inbound update an Event carries
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventCallback
	EventVoice
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventText:
		return "text"
	case EventCallback:
		return "callback"
	case EventVoice:
		return "voice"
	}
	return "unknown"
}

// Event is one inbound update reduced to what the conversation needs
type Event struct {
	Kind     EventKind
	UserID   int64
	ChatID   int64
	Username string

	// Command is set for EventCommand, without the leading slash
	Command string
	// Text is the message text for EventText and EventCommand
	Text string
	// Data is the callback payload for EventCallback
	Data string
	// FileID references the voice or audio file for EventVoice
	FileID string
}
