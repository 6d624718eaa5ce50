package relay

import "fmt"

// EditMarker prefixes messages that are revisions of an earlier message.
const EditMarker = "(edited) "

// ComposeMessage builds the outbound text blob. The link sits on its own
// final line so the destination renders it separately.
func ComposeMessage(name string, edited bool, text, link string) string {
	marker := ""
	if edited {
		marker = EditMarker
	}
	return fmt.Sprintf("%s%s says:\n%s\n%s", marker, name, text, link)
}
