/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains HandleWebSocket, which rate limits upgrade attempts, upgrades the
HTTP connection to WebSocket, and hands the connection to the relay core.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"relaychat/internal/app/chat"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/limiter"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
// The handler blocks for the lifetime of the connection.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !websocket.IsWebSocketUpgrade(r) {
			logx.Info("WebSocket request rejected: Not an upgrade request.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrUpgradeRequired))
			return
		}

		if !rateLimiter.Allow(ip) {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(conn, chat.ClientOptions{
			SendQueueSize:  deps.Config.SendQueueSize,
			MaxMessageSize: deps.Config.MaxMessageSize,
		})

		deps.Metrics.ConnectionOpened()
		defer deps.Metrics.ConnectionClosed()

		logx.Info("WebSocket connection established", "conn_id", client.ID())

		go client.WritePump()

		client.ReadPump(deps.Dispatcher)
	}
}
