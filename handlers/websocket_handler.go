package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mateus/app-pelada/draw"
	"github.com/mateus/app-pelada/services"
)

type WebSocketHandler struct {
	hub           *draw.Hub
	peladaService services.PeladaService
	upgrader      websocket.Upgrader
}

// NewWebSocketHandler accepts any origin when allowedOrigins contains "*".
func NewWebSocketHandler(hub *draw.Hub, ps services.PeladaService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		peladaService: ps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeWs подключает клиента к комнате пелады: /ws/peladas/{peladaID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	userID, peladaID, ok := peladaScope(w, r)
	if !ok {
		return
	}

	if _, err := h.peladaService.GetPelada(r.Context(), userID, peladaID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Int("pelada_id", peladaID), slog.Any("error", err))
		return
	}

	room := draw.RoomID(peladaID)
	h.hub.Register(draw.NewClient(h.hub, conn, room))
	slog.DebugContext(r.Context(), "websocket client joined", slog.String("room", room), slog.Int("user_id", userID))
}
