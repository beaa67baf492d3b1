package network

import (
	"net/http"
	"sync"

	"github.com/awesome-cap/hashmap"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/unoduel/server/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans committed game states out to websocket subscribers. It is
// the push half of the API; all moves still arrive over HTTP.
type Hub struct {
	rooms *hashmap.HashMap
}

func NewHub() *Hub {
	return &Hub{rooms: hashmap.New()}
}

type room struct {
	sync.Mutex
	conns map[*websocket.Conn]bool
}

func (h *Hub) room(gameID string) *room {
	if v, ok := h.rooms.Get(gameID); ok {
		return v.(*room)
	}
	r := &room{conns: map[*websocket.Conn]bool{}}
	h.rooms.Set(gameID, r)
	return r
}

// PublishState pushes one public view to every subscriber of the game.
// Connections that fail to take the write are dropped.
func (h *Hub) PublishState(gameID string, view service.GameView) {
	v, ok := h.rooms.Get(gameID)
	if !ok {
		return
	}
	r := v.(*room)
	data, err := json.Marshal(view)
	if err != nil {
		logrus.WithError(err).Error("encode state push")
		return
	}
	r.Lock()
	defer r.Unlock()
	for conn := range r.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(r.conns, conn)
			_ = conn.Close()
		}
	}
}

func (h *Hub) subscribe(w http.ResponseWriter, req *http.Request) {
	gameID := req.URL.Query().Get("id")
	if gameID == "" {
		http.Error(w, `{"error":"missing game id"}`, http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade")
		return
	}
	r := h.room(gameID)
	r.Lock()
	r.conns[conn] = true
	r.Unlock()
	logrus.WithField("game", gameID).Debug("spectator subscribed")

	// Nothing is read from subscribers; the loop only notices closes.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				r.Lock()
				delete(r.conns, conn)
				r.Unlock()
				_ = conn.Close()
				return
			}
		}
	}()
}
