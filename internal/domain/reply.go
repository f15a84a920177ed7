package domain

// ButtonKind distinguishes callback buttons from link buttons
type ButtonKind int

const (
	ButtonCallback ButtonKind = iota
	ButtonURL
)

// Button is a single inline keyboard button
type Button struct {
	Label   string
	Kind    ButtonKind
	Payload string
}

// Keyboard is an ordered list of button rows
type Keyboard [][]Button

// Payloads returns payloads of all buttons in row order
func (k Keyboard) Payloads() []string {
	var payloads []string
	for _, row := range k {
		for _, btn := range row {
			payloads = append(payloads, btn.Payload)
		}
	}
	return payloads
}

// ReplyKind tells how a reply is delivered
type ReplyKind int

const (
	ReplyText ReplyKind = iota
	ReplyVideo
	ReplyAudio
	ReplyPhoto
)

// Reply is one outbound message.
// For media replies Text is used as the caption and Media holds the source.
type Reply struct {
	Kind     ReplyKind
	Text     string
	Media    string
	Keyboard Keyboard
	// Edit asks to replace the message the pressed button belongs to
	Edit bool
}
