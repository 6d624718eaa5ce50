package slack

import "chatrelay/internal/domain"

// Payload type values of the Events API envelope.
const (
	typeURLVerification = "url_verification"
	typeEventCallback   = "event_callback"
)

const subTypeMessageChanged = "message_changed"

// callbackPayload is the outer Events API envelope.
type callbackPayload struct {
	Token     string       `json:"token"`
	TeamID    string       `json:"team_id"`
	APIAppID  string       `json:"api_app_id"`
	Type      string       `json:"type"`
	Challenge string       `json:"challenge,omitempty"`
	EventID   string       `json:"event_id"`
	EventTime int64        `json:"event_time"`
	Event     messageEvent `json:"event"`
}

// messageEvent covers the message shapes the relay handles, including the
// message_changed revision carrying the original snapshot.
type messageEvent struct {
	Type        string           `json:"type"`
	SubType     string           `json:"subtype,omitempty"`
	Text        string           `json:"text,omitempty"`
	User        string           `json:"user,omitempty"`
	TS          string           `json:"ts"`
	Channel     string           `json:"channel"`
	ChannelType string           `json:"channel_type,omitempty"`
	EventTS     string           `json:"event_ts,omitempty"`
	ThreadTS    string           `json:"thread_ts,omitempty"`
	Blocks      []block          `json:"blocks,omitempty"`
	Attachments []attachment     `json:"attachments,omitempty"`
	Message     *messageSnapshot `json:"message,omitempty"`
}

// messageSnapshot is the nested message carried by a message_changed
// revision. Its sender, text and timestamp take precedence over the outer
// event fields.
type messageSnapshot struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`
	User        string       `json:"user,omitempty"`
	TS          string       `json:"ts"`
	ThreadTS    string       `json:"thread_ts,omitempty"`
	Blocks      []block      `json:"blocks,omitempty"`
	Attachments []attachment `json:"attachments,omitempty"`
}

type block struct {
	Type     string         `json:"type"`
	BlockID  string         `json:"block_id,omitempty"`
	Elements []blockElement `json:"elements,omitempty"`
}

type blockElement struct {
	Type     string          `json:"type"`
	Elements []inlineElement `json:"elements,omitempty"`
}

type inlineElement struct {
	Type   string `json:"type,omitempty"`
	Text   string `json:"text,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

type attachment struct {
	ID       int    `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// normalize flattens the payload into the relay's event shape. For a
// message_changed revision the nested snapshot wins over the outer event.
func normalize(p callbackPayload) domain.Event {
	ev := domain.Event{
		Platform:     domain.PlatformSlack,
		SenderRef:    p.Event.User,
		Text:         p.Event.Text,
		ChannelRef:   p.Event.Channel,
		MessageRef:   p.Event.TS,
		ThreadRef:    p.Event.ThreadTS,
		WorkspaceRef: p.TeamID,
		Blocks:       convertBlocks(p.Event.Blocks),
		Attachments:  convertAttachments(p.Event.Attachments),
	}

	if p.Event.SubType == subTypeMessageChanged && p.Event.Message != nil {
		m := p.Event.Message
		ev.Edited = true
		ev.SenderRef = m.User
		ev.Text = m.Text
		ev.MessageRef = m.TS
		if m.ThreadTS != "" {
			ev.ThreadRef = m.ThreadTS
		}
		ev.Blocks = convertBlocks(m.Blocks)
		ev.Attachments = convertAttachments(m.Attachments)
	}
	return ev
}

func convertBlocks(blocks []block) []domain.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]domain.Block, 0, len(blocks))
	for _, b := range blocks {
		var db domain.Block
		for _, el := range b.Elements {
			var de domain.BlockElement
			for _, inner := range el.Elements {
				de.Elements = append(de.Elements, domain.InlineElement{Text: inner.Text})
			}
			db.Elements = append(db.Elements, de)
		}
		out = append(out, db)
	}
	return out
}

func convertAttachments(atts []attachment) []domain.Attachment {
	if len(atts) == 0 {
		return nil
	}
	out := make([]domain.Attachment, 0, len(atts))
	for _, a := range atts {
		out = append(out, domain.Attachment{Text: a.Text, Fallback: a.Fallback})
	}
	return out
}
