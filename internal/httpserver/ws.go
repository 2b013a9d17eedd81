// internal/httpserver/ws.go
//
// GET /session/ws: live play over a WebSocket.
//
// The client sends {"key": "A".."Z"|"ENTER"|"BACKSPACE"}; the server answers
// every accepted key with a keyRes frame. Enter is submitted on its own
// goroutine so typing (and dropped second Enters) keep flowing while the
// guess is validated and revealed. All frames go through one writer.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/input"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// wsConn is one socket bound to the player's live session.
type wsConn struct {
	ws   *websocket.Conn
	gate *input.Gate
	send chan []byte
	done chan struct{} // closed when the read side stops
}

func (s *Server) upgrader() *websocket.Upgrader {
	origin := s.opts.Config.Server.ClientOrigin
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin || o == "http://"+r.Host || o == "https://"+r.Host
		},
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := s.current(w, r)
	if sess == nil {
		return
	}
	ws, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade")
		return
	}

	c := &wsConn{
		ws:   ws,
		gate: input.NewGate(sess),
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go c.writePump()
	c.push(keyRes{Accepted: true, Snapshot: sess.Snapshot()})
	c.readPump()
}

// push queues a frame; frames are dropped when the client is not reading.
func (c *wsConn) push(v keyRes) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Msg("ws encode")
		return
	}
	select {
	case <-c.done:
	case c.send <- b:
	default:
		log.Warn().Msg("ws send buffer full, dropping frame")
	}
}

// readPump reads key frames until the socket closes. Closing the socket
// cancels any in-flight submission.
func (c *wsConn) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		close(c.done)
		c.ws.Close()
	}()
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	inflight := make(chan struct{}, 1)
	for {
		var req keyReq
		if err := c.ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("ws read")
			}
			return
		}

		a := input.Parse(req.Key)
		if a.Kind != input.KindEnter {
			if _, ok := c.gate.Accept(ctx, a); ok {
				c.push(keyRes{Accepted: true, Snapshot: c.gate.Session().Snapshot()})
			}
			continue
		}

		select {
		case inflight <- struct{}{}:
		default:
			continue // an Enter is already running
		}
		go func() {
			defer func() { <-inflight }()
			res, ok := c.gate.Accept(ctx, a)
			if ok {
				c.push(keyRes{Accepted: true, Error: game.Message(res.Err), Snapshot: c.gate.Session().Snapshot()})
			}
		}()
	}
}

// writePump serializes all writes and keeps the connection alive with pings.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
