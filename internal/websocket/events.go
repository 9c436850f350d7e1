// Package websocket pushes session resolution changes to open pages.
package websocket

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/session"
)

const writeTimeout = 10 * time.Second

// SessionEvents upgrades GET /session/events and streams a SessionEvent for
// the current state and then for every commit of the workspace resolver. The
// socket is write-only; the handler returns when the client goes away.
func SessionEvents(c echo.Context) error {
	ws := middleware.WorkspaceFrom(c)
	logger := middleware.FromContext(c.Request().Context()).With("sid", ws.SID)

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Failed to upgrade connection to WebSocket", "error", err)
		return nil
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(c.Request().Context())

	updates := make(chan session.State, 1)
	cancel := ws.Resolver.Watch(func(st session.State) { latest(updates, st) })
	defer cancel()

	st, err := ws.Resolver.Await(ctx)
	if err != nil {
		return nil
	}
	logger.Debug("Session events connected", "event", "session_events_connected")

	for {
		if err := write(ctx, conn, NewSessionEvent(st)); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Debug("Session events write failed", "error", err)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return nil
		case st = <-updates:
		}
	}
}

// latest leaves only the newest state in ch.
func latest(ch chan session.State, st session.State) {
	for {
		select {
		case ch <- st:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, ev SessionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, ev)
}
