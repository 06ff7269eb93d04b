package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	ws "github.com/stemsi/gamesurvey-backend/internal/websocket"
)

// ResultListener streams newly persisted results until ctx is done.
type ResultListener interface {
	Listen(ctx context.Context) (<-chan model.Result, error)
}

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler pushes live survey results to the admin panel.
type WSHandler struct {
	feed         ResultListener
	log          zerolog.Logger
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(feed ResultListener, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		feed:         feed,
		log:          log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
		pingInterval: ws.PingPeriod,
	}
}

// ResultFeed godoc
// WS /ws/v1/admin/results
// Upgrades to WebSocket and forwards every new result until the client leaves.
func (h *WSHandler) ResultFeed(c *gin.Context) {
	account := middleware.GetAccount(c)
	if account == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	results, err := h.feed.Listen(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to subscribe to result feed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("account_id", account.ID).Logger()
	wsLog.Info().Msg("Admin connected to result feed")

	// The reader owns no writes; it hands pings to the loop below, which is
	// the connection's only writer.
	pings := make(chan struct{}, 1)
	go func() {
		defer cancel()
		ws.KeepAlive(conn)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	if err := ws.WriteTyped(conn, ws.ReadyEvent{Event: ws.EventReady}); err != nil {
		return
	}

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wsLog.Info().Msg("Admin disconnected from result feed")
			return

		case res, ok := <-results:
			if !ok {
				_ = ws.WriteError(conn, "result feed closed")
				return
			}
			if err := ws.WriteTyped(conn, ws.ResultEvent{Event: ws.EventResult, Result: res}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed")
				return
			}

		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}

		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}
