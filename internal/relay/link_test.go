package relay

import (
	"strings"
	"testing"
)

func TestBuildArchiveLink(t *testing.T) {
	got := BuildArchiveLink("#C1", "1690000000.000100", "", "acme")
	want := "https://acme.slack.com/archives/C1/p1690000000000100"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildArchiveLink_Thread(t *testing.T) {
	got := BuildArchiveLink("C1", "1690000000.000200", "1690000000.000100", "acme")
	if !strings.Contains(got, "thread_ts=1690000000.000100") {
		t.Errorf("thread link must keep the dotted thread timestamp: %q", got)
	}
	if !strings.Contains(got, "cid=C1") {
		t.Errorf("thread link must carry the channel id: %q", got)
	}
}

func TestBuildArchiveLink_DefaultDomain(t *testing.T) {
	got := BuildArchiveLink("C9", "1.2", "", "")
	if !strings.HasPrefix(got, "https://workspace.slack.com/") {
		t.Errorf("expected default domain, got %q", got)
	}
}
