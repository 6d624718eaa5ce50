package slack

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"chatrelay/internal/domain"
	"chatrelay/internal/relay"
)

const (
	maxBodySize = 1 << 20 // 1MB

	// SignatureHeader carries the request signature; the signature query
	// parameter is accepted as an alternative.
	SignatureHeader = "X-Relay-Signature"
)

// Handler is the webhook endpoint for the Slack workspace. Each request is
// independent: verify the raw-body signature, parse, resolve the sender,
// apply suppression, compose and forward once.
type Handler struct {
	secrets    []string
	directory  WorkspaceDirectory
	suppressor *relay.Suppressor
	forwarder  domain.Publisher
	logger     *slog.Logger
}

type HandlerConfig struct {
	SigningSecrets []string
	Directory      WorkspaceDirectory
	Suppressor     *relay.Suppressor
	Forwarder      domain.Publisher
	Logger         *slog.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		secrets:    cfg.SigningSecrets,
		directory:  cfg.Directory,
		suppressor: cfg.Suppressor,
		forwarder:  cfg.Forwarder,
		logger:     cfg.Logger,
	}
}

// Register mounts the webhook routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/slack/webhook", h.handleLiveness)
	mux.HandleFunc("POST /api/slack/webhook", h.handleEvent)
}

func (h *Handler) handleLiveness(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, http.StatusOK, map[string]string{"message": "slack webhook is running"})
}

func (h *Handler) handleEvent(rw http.ResponseWriter, r *http.Request) {
	// The raw body bytes are needed for signature verification; JSON
	// decoding is lossy with respect to exact byte content.
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "cannot read body"})
		return
	}
	defer r.Body.Close()

	if len(h.secrets) == 0 {
		h.logger.Error("no slack signing secrets configured")
		writeJSON(rw, http.StatusInternalServerError, map[string]string{"error": "misconfigured"})
		return
	}

	sig := r.Header.Get(SignatureHeader)
	if sig == "" {
		sig = r.URL.Query().Get("signature")
	}
	if !verifySignature(body, h.secrets, sig) {
		h.logger.Warn("slack signature rejected", "signature_present", sig != "")
		writeJSON(rw, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var payload callbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	switch payload.Type {
	case typeURLVerification:
		h.logger.Info("url verification challenge received")
		writeJSON(rw, http.StatusOK, map[string]string{"challenge": payload.Challenge})
		return
	case typeEventCallback:
		if err := h.process(r.Context(), payload); err != nil {
			h.logger.Error("slack event processing failed", "event_id", payload.EventID, "err", err)
			writeJSON(rw, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
	default:
		h.logger.Info("ignoring slack payload", "type", payload.Type)
	}

	writeJSON(rw, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) process(ctx context.Context, payload callbackPayload) error {
	ev := normalize(payload)

	h.logger.Info("slack message received",
		"event_id", payload.EventID,
		"channel", ev.ChannelRef,
		"sender", ev.SenderRef,
		"edited", ev.Edited,
	)

	// Sender-ref suppression needs no lookup; name suppression runs after
	// resolution.
	if h.suppressor.Match(ev.SenderRef, "") {
		h.logger.Info("message suppressed", "sender", ev.SenderRef, "channel", ev.ChannelRef)
		return nil
	}

	identity := relay.ResolveIdentity(ctx, ev.SenderRef, h.directory, h.logger)
	if h.suppressor.Match(ev.SenderRef, identity.Name) {
		h.logger.Info("message suppressed", "sender", ev.SenderRef, "channel", ev.ChannelRef)
		return nil
	}

	text := relay.ExtractText(ev)
	workspaceDomain := h.directory.WorkspaceDomain(ctx, ev.WorkspaceRef)
	link := relay.BuildArchiveLink(ev.ChannelRef, ev.MessageRef, ev.ThreadRef, workspaceDomain)
	composed := relay.ComposeMessage(identity.Name, ev.Edited, text, link)

	return h.forwarder.Forward(ctx, composed)
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(v)
}
