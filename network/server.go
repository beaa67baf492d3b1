package network

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/unoduel/server/card/color"
	"github.com/unoduel/server/consts"
	"github.com/unoduel/server/service"
)

// Server exposes the game service over HTTP plus a websocket push
// channel. Identity is the caller-supplied X-User-ID header; this is
// a trusted-gateway deployment, not an auth layer.
type Server struct {
	r   *chi.Mux
	svc *service.Service
	hub *Hub
}

func NewServer(svc *service.Service, hub *Hub) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, hub: hub}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Post("/create", s.handleCreate)
		r.Post("/join", s.handleJoin)
		r.Post("/play", s.handlePlay)
		r.Post("/draw", s.handleDraw)
		r.Post("/uno", s.handleDeclare)
		r.Post("/leave", s.handleLeave)
		r.Get("/state", s.handleState)
		r.Get("/ws", hub.subscribe)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})
	return s
}

func (s *Server) Serve(addr string) error {
	logrus.WithField("addr", addr).Info("http server listening")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the mux for tests.
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// identity pulls the caller from the gateway headers. An absent id is
// the only authentication failure this layer knows about.
func identity(r *http.Request) (userID, name string, ok bool) {
	userID = r.Header.Get("X-User-ID")
	if userID == "" {
		return "", "", false
	}
	name = r.Header.Get("X-User-Name")
	if name == "" {
		name = userID
	}
	return userID, name, true
}

type createReq struct {
	Difficulty consts.Difficulty `json:"difficulty"`
	VsBot      bool              `json:"vsBot"`
}

type gameReq struct {
	GameID string `json:"gameId"`
}

type playReq struct {
	GameID string `json:"gameId"`
	CardID int    `json:"cardId"`
	Color  string `json:"color"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, name, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	var req createReq
	if !decode(w, r, &req) {
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = consts.DifficultyMedium
	}
	view, err := s.svc.CreateGame(r.Context(), userID, name, req.Difficulty, req.VsBot)
	respond(w, view, err)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	userID, name, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	var req gameReq
	if !decode(w, r, &req) {
		return
	}
	view, err := s.svc.JoinGame(r.Context(), userID, name, req.GameID)
	respond(w, view, err)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	var req playReq
	if !decode(w, r, &req) {
		return
	}
	chosen := color.None
	if req.Color != "" {
		var err error
		if chosen, err = color.ByName(req.Color); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	view, err := s.svc.PlayCard(r.Context(), userID, req.GameID, req.CardID, chosen)
	respond(w, view, err)
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	var req gameReq
	if !decode(w, r, &req) {
		return
	}
	view, err := s.svc.DrawCard(r.Context(), userID, req.GameID)
	respond(w, view, err)
}

func (s *Server) handleDeclare(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	var req gameReq
	if !decode(w, r, &req) {
		return
	}
	view, err := s.svc.DeclareLastCard(r.Context(), userID, req.GameID)
	respond(w, view, err)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	view, err := s.svc.State(r.Context(), userID, r.URL.Query().Get("id"))
	respond(w, view, err)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID")
		return
	}
	var req gameReq
	if !decode(w, r, &req) {
		return
	}
	if err := s.svc.Leave(r.Context(), userID, req.GameID); err != nil {
		respond(w, nil, err)
		return
	}
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

type errorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

func respond(w http.ResponseWriter, v interface{}, err error) {
	if err != nil {
		var ce consts.Error
		if errors.As(err, &ce) {
			w.WriteHeader(httpStatus(ce))
			_ = json.NewEncoder(w).Encode(errorBody{Error: ce.Msg, Code: ce.Code})
			return
		}
		logrus.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func httpStatus(e consts.Error) int {
	switch e {
	case consts.ErrGameNotFound:
		return http.StatusNotFound
	case consts.ErrConcurrencyConflict:
		return http.StatusConflict
	case consts.ErrNotYourTurn, consts.ErrNotInGame, consts.ErrJoinOwnGame:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
