package relay

import (
	"testing"

	"chatrelay/internal/domain"
)

func TestExtractText_PlainText(t *testing.T) {
	ev := domain.Event{Text: "hi"}
	if got := ExtractText(ev); got != "hi" {
		t.Errorf("expected hi, got %q", got)
	}
}

func TestExtractText_PlainTextWins(t *testing.T) {
	ev := domain.Event{
		Text: "plain",
		Blocks: []domain.Block{
			{Elements: []domain.BlockElement{{Elements: []domain.InlineElement{{Text: "blocked"}}}}},
		},
	}
	if got := ExtractText(ev); got != "plain" {
		t.Errorf("expected plain, got %q", got)
	}
}

func TestExtractText_Blocks(t *testing.T) {
	ev := domain.Event{
		Blocks: []domain.Block{
			{Elements: []domain.BlockElement{
				{Elements: []domain.InlineElement{{Text: "a"}, {Text: ""}, {Text: "b"}}},
			}},
		},
	}
	if got := ExtractText(ev); got != "a b" {
		t.Errorf("expected %q, got %q", "a b", got)
	}
}

func TestExtractText_AttachmentText(t *testing.T) {
	ev := domain.Event{
		Attachments: []domain.Attachment{{Text: "t", Fallback: "f"}},
	}
	if got := ExtractText(ev); got != "t" {
		t.Errorf("expected t, got %q", got)
	}
}

func TestExtractText_AttachmentFallback(t *testing.T) {
	ev := domain.Event{
		Attachments: []domain.Attachment{{Fallback: "f"}},
	}
	if got := ExtractText(ev); got != "f" {
		t.Errorf("expected f, got %q", got)
	}
}

func TestExtractText_MultipleAttachments(t *testing.T) {
	ev := domain.Event{
		Attachments: []domain.Attachment{{Text: "one"}, {Fallback: "two"}, {}},
	}
	if got := ExtractText(ev); got != "one two" {
		t.Errorf("expected %q, got %q", "one two", got)
	}
}

func TestExtractText_Empty(t *testing.T) {
	if got := ExtractText(domain.Event{}); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
