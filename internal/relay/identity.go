package relay

import (
	"context"
	"fmt"
	"log/slog"

	"chatrelay/internal/domain"
)

// ResolveIdentity turns a sender reference into a display name via one
// directory lookup. Lookup failure degrades to a placeholder so enrichment
// never aborts the forwarding pipeline.
func ResolveIdentity(ctx context.Context, ref string, dir domain.Directory, logger *slog.Logger) domain.Identity {
	if ref == "" {
		return domain.Identity{Name: "unknown user", Placeholder: true}
	}

	profile, err := dir.Lookup(ctx, ref)
	if err != nil {
		logger.Warn("directory lookup failed, using placeholder", "sender", ref, "err", err)
		return domain.Identity{Name: fmt.Sprintf("user(%s)", ref), Placeholder: true}
	}

	switch {
	case profile.RealName != "":
		return domain.Identity{Name: profile.RealName}
	case profile.Handle != "":
		return domain.Identity{Name: profile.Handle}
	}
	return domain.Identity{Name: fmt.Sprintf("user(%s)", ref), Placeholder: true}
}
