package slack

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"chatrelay/internal/domain"

	"github.com/slack-go/slack"
)

// WorkspaceDirectory resolves sender references and the workspace web
// domain. Satisfied by *Directory; handlers take the interface so tests can
// substitute a fake.
type WorkspaceDirectory interface {
	domain.Directory
	WorkspaceDomain(ctx context.Context, teamID string) string
}

// Directory resolves Slack users and teams through the Web API.
type Directory struct {
	client *slack.Client
	logger *slog.Logger
}

type DirectoryConfig struct {
	BotToken   string
	APIURL     string // overridable for tests
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewDirectory(cfg DirectoryConfig) *Directory {
	var opts []slack.Option
	if cfg.HTTPClient != nil {
		opts = append(opts, slack.OptionHTTPClient(cfg.HTTPClient))
	}
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}
	return &Directory{
		client: slack.New(cfg.BotToken, opts...),
		logger: cfg.Logger,
	}
}

// Lookup fetches the user's profile via users.info.
func (d *Directory) Lookup(ctx context.Context, ref string) (domain.Profile, error) {
	user, err := d.client.GetUserInfoContext(ctx, ref)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("slack users.info: %w", err)
	}
	return domain.Profile{RealName: user.RealName, Handle: user.Name}, nil
}

// WorkspaceDomain resolves the team's web domain via team.info. The empty
// string tells the caller to fall back to the default domain.
func (d *Directory) WorkspaceDomain(ctx context.Context, teamID string) string {
	var (
		info *slack.TeamInfo
		err  error
	)
	if teamID != "" {
		info, err = d.client.GetOtherTeamInfoContext(ctx, teamID)
	} else {
		info, err = d.client.GetTeamInfoContext(ctx)
	}
	if err != nil {
		d.logger.Warn("slack team.info failed, using default domain", "team", teamID, "err", err)
		return ""
	}
	return info.Domain
}
