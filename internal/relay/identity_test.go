package relay

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"chatrelay/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeDirectory struct {
	profile domain.Profile
	err     error
	calls   int
}

func (f *fakeDirectory) Lookup(ctx context.Context, ref string) (domain.Profile, error) {
	f.calls++
	return f.profile, f.err
}

func TestResolveIdentity_AbsentRef(t *testing.T) {
	dir := &fakeDirectory{}
	id := ResolveIdentity(context.Background(), "", dir, testLogger())
	if id.Name != "unknown user" || !id.Placeholder {
		t.Errorf("expected unknown user placeholder, got %+v", id)
	}
	if dir.calls != 0 {
		t.Errorf("expected no lookup for absent ref, got %d calls", dir.calls)
	}
}

func TestResolveIdentity_LookupError(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("connection refused")}
	id := ResolveIdentity(context.Background(), "U123", dir, testLogger())
	if id.Name != "user(U123)" || !id.Placeholder {
		t.Errorf("expected user(U123) placeholder, got %+v", id)
	}
}

func TestResolveIdentity_RealNamePreferred(t *testing.T) {
	dir := &fakeDirectory{profile: domain.Profile{RealName: "Alice Example", Handle: "alice"}}
	id := ResolveIdentity(context.Background(), "U1", dir, testLogger())
	if id.Name != "Alice Example" || id.Placeholder {
		t.Errorf("expected real name, got %+v", id)
	}
}

func TestResolveIdentity_HandleFallback(t *testing.T) {
	dir := &fakeDirectory{profile: domain.Profile{Handle: "alice"}}
	id := ResolveIdentity(context.Background(), "U1", dir, testLogger())
	if id.Name != "alice" || id.Placeholder {
		t.Errorf("expected handle, got %+v", id)
	}
}

func TestResolveIdentity_EmptyProfile(t *testing.T) {
	dir := &fakeDirectory{}
	id := ResolveIdentity(context.Background(), "U9", dir, testLogger())
	if id.Name != "user(U9)" || !id.Placeholder {
		t.Errorf("expected placeholder for empty profile, got %+v", id)
	}
}
