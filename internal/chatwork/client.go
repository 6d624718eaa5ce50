package chatwork

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"chatrelay/internal/domain"
	"chatrelay/internal/relay"
)

const defaultBaseURL = "https://api.chatwork.com/v2"

// Client is a minimal Chatwork REST API client. Authentication is the
// X-ChatWorkToken header on every request.
type Client struct {
	apiToken string
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
}

type ClientConfig struct {
	APIToken   string
	BaseURL    string // overridable for tests
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = relay.SharedHTTPClient(0)
	}
	return &Client{
		apiToken: cfg.APIToken,
		baseURL:  cfg.BaseURL,
		client:   cfg.HTTPClient,
		logger:   cfg.Logger,
	}
}

// GetAccountInfo fetches a contact record by account id.
func (c *Client) GetAccountInfo(ctx context.Context, accountID string) (AccountInfo, error) {
	var info AccountInfo
	if err := c.get(ctx, "/contacts/"+accountID, &info); err != nil {
		return AccountInfo{}, err
	}
	return info, nil
}

// GetRoomInfo fetches room metadata.
func (c *Client) GetRoomInfo(ctx context.Context, roomID int64) (RoomInfo, error) {
	var info RoomInfo
	if err := c.get(ctx, fmt.Sprintf("/rooms/%d", roomID), &info); err != nil {
		return RoomInfo{}, err
	}
	return info, nil
}

// Lookup implements domain.Directory over the contacts endpoint.
func (c *Client) Lookup(ctx context.Context, ref string) (domain.Profile, error) {
	info, err := c.GetAccountInfo(ctx, ref)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{RealName: info.Name, Handle: info.ChatworkID}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.apiToken == "" {
		return fmt.Errorf("chatwork API token is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-ChatWorkToken", c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("chatwork API %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("chatwork API %s: status %d: %s", path, resp.StatusCode, excerpt)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
