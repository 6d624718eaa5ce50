package domain

// Platform identifies the source chat service of an inbound event.
type Platform string

const (
	PlatformChatwork Platform = "chatwork"
	PlatformSlack    Platform = "slack"
)

// Event is a platform-neutral view of one inbound webhook message. For an
// edited message the platform adapter substitutes the nested original
// snapshot's sender/text/ref before the Event is built, so downstream
// components never see the revision envelope.
type Event struct {
	Platform     Platform
	SenderRef    string
	Text         string
	Blocks       []Block
	Attachments  []Attachment
	ChannelRef   string
	MessageRef   string
	ThreadRef    string
	Edited       bool
	WorkspaceRef string
}

// Block mirrors the two-level nesting of rich message content: a block
// holds elements, each element holds inline elements that may carry text.
type Block struct {
	Elements []BlockElement
}

type BlockElement struct {
	Elements []InlineElement
}

type InlineElement struct {
	Text string
}

// Attachment carries attachment text with a fallback rendering.
type Attachment struct {
	Text     string
	Fallback string
}

// InThread returns true if the event is part of a thread.
func (e *Event) InThread() bool {
	return e.ThreadRef != ""
}

// Identity is a resolved sender display name. Placeholder is true when the
// name is synthetic (absent sender reference or failed lookup).
type Identity struct {
	Name        string
	Placeholder bool
}

// ForwardPayload is the only outbound wire shape.
type ForwardPayload struct {
	Text string `json:"text"`
}
