package events

import (
	"net/http"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/taskboard/backend/internal/common/constants"
	commonhttp "github.com/taskboard/backend/internal/common/http"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/session"
)

// Handler upgrades an authenticated request to a websocket event stream. The
// session middleware runs in front, so an identity is always present here.
func Handler(hub *Hub, log *logger.Logger) http.HandlerFunc {
	upgrader := gorillaWS.Upgrader{
		ReadBufferSize:  constants.WebSocketReadBufferSize,
		WriteBufferSize: constants.WebSocketWriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			host := r.Host
			if host == "" {
				host = r.URL.Host
			}
			return origin == "http://"+host || origin == "https://"+host
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.FromContext(r.Context())
		if !ok {
			commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("event stream upgrade failed user_id=%s: %v", identity.UserID, err)
			return
		}

		client := newClient(hub, conn, identity.UserID, log)
		hub.register(client)
		client.start()
	}
}
