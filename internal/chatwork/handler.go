package chatwork

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"chatrelay/internal/domain"
	"chatrelay/internal/relay"
)

const maxBodySize = 1 << 20 // 1MB

// roomDirectory is the slice of the Chatwork client the handler uses.
type roomDirectory interface {
	domain.Directory
	GetRoomInfo(ctx context.Context, roomID int64) (RoomInfo, error)
}

// Handler is the webhook endpoint for the Chatwork team-chat service.
// Authentication is an exact match of the body's signature token against
// the configured token list.
type Handler struct {
	webhookTokens []string
	directory     roomDirectory
	suppressor    *relay.Suppressor
	forwarder     domain.Publisher
	logger        *slog.Logger
}

type HandlerConfig struct {
	WebhookTokens []string
	Directory     roomDirectory
	Suppressor    *relay.Suppressor
	Forwarder     domain.Publisher
	Logger        *slog.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		webhookTokens: cfg.WebhookTokens,
		directory:     cfg.Directory,
		suppressor:    cfg.Suppressor,
		forwarder:     cfg.Forwarder,
		logger:        cfg.Logger,
	}
}

// Register mounts the webhook routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/chatwork/webhook", h.handleLiveness)
	mux.HandleFunc("POST /api/chatwork/webhook", h.handleEvent)
}

func (h *Handler) handleLiveness(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, http.StatusOK, map[string]string{"message": "chatwork webhook is running"})
}

func (h *Handler) handleEvent(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "cannot read body"})
		return
	}
	defer r.Body.Close()

	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if len(h.webhookTokens) == 0 {
		h.logger.Error("no chatwork webhook tokens configured")
		writeJSON(rw, http.StatusInternalServerError, map[string]string{"error": "misconfigured"})
		return
	}
	if !h.tokenMatch(req.Signature) {
		h.logger.Warn("chatwork webhook token rejected")
		writeJSON(rw, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if req.Event == nil {
		h.logger.Info("chatwork payload carried no event, ignoring")
		writeJSON(rw, http.StatusOK, map[string]any{"success": true})
		return
	}

	if err := h.process(r.Context(), req.Event); err != nil {
		h.logger.Error("chatwork event processing failed",
			"room", req.Event.RoomID,
			"message_id", req.Event.MessageID,
			"err", err,
		)
		writeJSON(rw, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) tokenMatch(signature string) bool {
	if signature == "" {
		return false
	}
	for _, token := range h.webhookTokens {
		if token != "" && token == signature {
			return true
		}
	}
	return false
}

func (h *Handler) process(ctx context.Context, ev *WebhookEvent) error {
	h.logger.Info("chatwork message received",
		"room", ev.RoomID,
		"message_id", ev.MessageID,
		"sender", ev.FromAccountID,
	)

	if ev.FromAccountID == 0 {
		h.logger.Info("chatwork event has no sender account, ignoring", "message_id", ev.MessageID)
		return nil
	}

	ref := strconv.FormatInt(ev.FromAccountID, 10)
	if h.suppressor.Match(ref, "") {
		h.logger.Info("message suppressed", "sender", ref, "room", ev.RoomID)
		return nil
	}

	identity := relay.ResolveIdentity(ctx, ref, h.directory, h.logger)
	if h.suppressor.Match(ref, identity.Name) {
		h.logger.Info("message suppressed", "sender", ref, "room", ev.RoomID)
		return nil
	}

	// Room name is log context only; failure here never blocks the relay.
	roomName := ""
	if info, err := h.directory.GetRoomInfo(ctx, ev.RoomID); err == nil {
		roomName = info.Name
	} else {
		h.logger.Debug("room lookup failed", "room", ev.RoomID, "err", err)
	}

	link := MessageLink(ev.RoomID, ev.MessageID)
	composed := relay.ComposeMessage(identity.Name, false, ev.Body, link)

	h.logger.Info("relaying chatwork message",
		"room", ev.RoomID,
		"room_name", roomName,
		"message_id", ev.MessageID,
		"content_len", len(ev.Body),
	)
	return h.forwarder.Forward(ctx, composed)
}

// MessageLink builds the deep link to a message in the Chatwork web UI.
func MessageLink(roomID int64, messageID string) string {
	return fmt.Sprintf("https://www.chatwork.com/#!rid%d-%s", roomID, messageID)
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(v)
}
