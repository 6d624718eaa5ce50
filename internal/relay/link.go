package relay

import (
	"fmt"
	"strings"
)

const defaultWorkspaceDomain = "workspace"

// BuildArchiveLink constructs the deep link back to the original message in
// the workspace web UI. The message timestamp loses its dot separator in
// the path segment; a thread reference is appended in its original dotted
// form, as the web client expects.
func BuildArchiveLink(channel, ts, threadTS, domain string) string {
	if domain == "" {
		domain = defaultWorkspaceDomain
	}
	channel = strings.TrimPrefix(channel, "#")
	link := fmt.Sprintf("https://%s.slack.com/archives/%s/p%s", domain, channel, strings.ReplaceAll(ts, ".", ""))
	if threadTS != "" {
		link += fmt.Sprintf("?thread_ts=%s&cid=%s", threadTS, channel)
	}
	return link
}
