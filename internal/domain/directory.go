package domain

import "context"

// Profile is the subset of a directory record the relay cares about.
type Profile struct {
	RealName string
	Handle   string
}

// Directory resolves an opaque sender reference to a profile via the
// platform's REST API.
type Directory interface {
	Lookup(ctx context.Context, ref string) (Profile, error)
}

// Publisher delivers one composed message to the destination webhook.
type Publisher interface {
	Forward(ctx context.Context, text string) error
}
