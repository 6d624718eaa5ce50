package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"chatrelay/internal/domain"
)

const forwardBodyExcerpt = 512

// ForwardError reports a failed delivery attempt to the destination
// webhook. StatusCode is zero for network-level failures.
type ForwardError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ForwardError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("forward failed: %v", e.Err)
	}
	return fmt.Sprintf("forward failed: destination returned %d", e.StatusCode)
}

func (e *ForwardError) Unwrap() error { return e.Err }

// Forwarder delivers composed messages to the destination webhook URL.
// Exactly one attempt per call, no backoff, no queueing; the operator
// resends manually if needed.
type Forwarder struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewForwarder(url string, client *http.Client, logger *slog.Logger) *Forwarder {
	if client == nil {
		client = SharedHTTPClient(0)
	}
	return &Forwarder{url: url, client: client, logger: logger}
}

// Forward POSTs the text as a JSON payload. A status in [200,300) is
// success; anything else is a *ForwardError.
func (f *Forwarder) Forward(ctx context.Context, text string) error {
	if f.url == "" {
		return &ForwardError{Err: fmt.Errorf("destination webhook URL is not configured")}
	}

	body, err := json.Marshal(domain.ForwardPayload{Text: text})
	if err != nil {
		return &ForwardError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return &ForwardError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("forward request failed", "err", err)
		return &ForwardError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		f.logger.Info("message forwarded", "status", resp.StatusCode, "content_len", len(text))
		return nil
	}

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, forwardBodyExcerpt))
	f.logger.Error("destination rejected forward", "status", resp.StatusCode, "body", string(excerpt))
	return &ForwardError{StatusCode: resp.StatusCode, Body: string(excerpt)}
}
