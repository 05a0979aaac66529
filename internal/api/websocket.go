package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashureev/onboard-assistant/internal/domain"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// ChatSocket serves the chat exchange over a WebSocket. Each text frame
// carries one request and receives exactly one response frame.
func (h *Handler) ChatSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "chat ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()
	ws.SetReadLimit(h.maxBodySize)

	ctx := r.Context()
	slog.Info("Chat socket connected", "ip", r.RemoteAddr)

	for {
		typ, data, err := ws.Read(ctx)
		if err != nil {
			if !isExpectedClose(err) && ctx.Err() == nil {
				slog.Warn("Chat socket read failed", "error", err)
			}
			return
		}

		reply := h.socketReply(ctx, typ, data)
		if err := wsjson.Write(ctx, ws, reply); err != nil {
			slog.Debug("Chat socket write failed", "error", err)
			return
		}
	}
}

func (h *Handler) socketReply(ctx context.Context, typ websocket.MessageType, data []byte) interface{} {
	if typ != websocket.MessageText {
		return map[string]string{"error": "expected a text frame"}
	}

	var req domain.ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return map[string]string{"error": "invalid request body"}
	}

	resp, status, msg := h.exchange(ctx, req)
	if status != http.StatusOK {
		return map[string]string{"error": msg}
	}
	return resp
}

func isExpectedClose(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
