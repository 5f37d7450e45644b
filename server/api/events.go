package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dekarrin/darkstar/server/result"
	"github.com/gorilla/websocket"
)

const (
	eventWriteTimeout   = 5 * time.Second
	defaultPingInterval = 30 * time.Second
	defaultPongWait     = 60 * time.Second
)

// HTTPGetEvents returns a HandlerFunc that upgrades to a websocket and pushes
// every deferred event of a game to the client as a JSON text message. The
// client only has to answer pings; the connection is closed when the game is
// deleted or a ping goes unanswered for PongWait.
func (api *API) HTTPGetEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		s, errResult := api.getSession(req)
		if errResult != nil {
			httpEndpoint(api.Log, func(*http.Request) result.Result {
				return *errResult
			})(w, req)
			return
		}

		conn, err := api.upgrader.Upgrade(w, req, nil)
		if err != nil {
			// the upgrader has already replied
			api.Log.WithField("session", s.ID.String()).Warnf("websocket upgrade: %s", err.Error())
			return
		}
		defer conn.Close()

		log := api.Log.WithField("session", s.ID.String())
		log.Info("event subscriber connected")
		defer log.Info("event subscriber disconnected")

		events, cancelSub := s.Subscribe()
		defer cancelSub()

		ctx, cancel := context.WithCancel(req.Context())
		defer cancel()

		_ = conn.SetReadDeadline(time.Now().Add(api.PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(api.PongWait))
		})

		// reading is what processes pongs and notices the client going away.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
				_ = conn.SetReadDeadline(time.Now().Add(api.PongWait))
			}
		}()

		ping := time.NewTicker(api.PingInterval)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventWriteTimeout)); err != nil {
					log.Debugf("ping failed: %s", err.Error())
					return
				}
			case ev, ok := <-events:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"), time.Now().Add(time.Second))
					return
				}
				b, err := json.Marshal(ev)
				if err != nil {
					log.Errorf("marshal event: %s", err.Error())
					continue
				}
				_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}
