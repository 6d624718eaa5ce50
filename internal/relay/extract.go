package relay

import (
	"strings"

	"chatrelay/internal/domain"
)

// ExtractText returns the best-effort human-readable text of an event.
// Sources are consulted in a fixed priority order — plain text, block
// content, attachments — and the first non-empty result wins. Absent or
// malformed nesting is simply empty, never an error.
func ExtractText(ev domain.Event) string {
	if ev.Text != "" {
		return ev.Text
	}

	var parts []string
	for _, block := range ev.Blocks {
		for _, el := range block.Elements {
			for _, inner := range el.Elements {
				if inner.Text != "" {
					parts = append(parts, inner.Text)
				}
			}
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	for _, att := range ev.Attachments {
		text := att.Text
		if text == "" {
			text = att.Fallback
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
