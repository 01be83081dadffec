package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = time.Minute
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4096
	outboxSize = 64
)

// websocketConnection owns one socket. Writes go through a single writer
// goroutine; send blocks until the message is queued or the connection
// is gone.
type websocketConnection struct {
	socket *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	outbox chan any
	done   chan struct{}
}

func newWebsocketConnection(parent context.Context, socket *websocket.Conn) *websocketConnection {
	ctx, cancel := context.WithCancel(parent)
	wc := &websocketConnection{
		socket: socket,
		ctx:    ctx,
		cancel: cancel,
		outbox: make(chan any, outboxSize),
		done:   make(chan struct{}),
	}
	socket.SetReadLimit(maxMessage)
	_ = socket.SetReadDeadline(time.Now().Add(pongWait))
	socket.SetPongHandler(func(string) error {
		return socket.SetReadDeadline(time.Now().Add(pongWait))
	})
	go wc.writeLoop()
	return wc
}

func (wc *websocketConnection) send(msg any) bool {
	select {
	case wc.outbox <- msg:
		return true
	case <-wc.ctx.Done():
		return false
	}
}

// readMessages decodes every inbound message into a T and passes it to
// handle. Malformed messages are answered with an error and skipped. It
// returns once the socket fails or closes.
func readMessages[T any](wc *websocketConnection, handle func(T)) {
	for {
		_, data, err := wc.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		var msg T
		if err := json.Unmarshal(data, &msg); err != nil {
			wc.send(errorMsg("bad-message"))
			continue
		}
		handle(msg)
	}
}

// close stops the writer, sends a close frame and waits for the socket
// to be released.
func (wc *websocketConnection) close() {
	wc.cancel()
	<-wc.done
}

func (wc *websocketConnection) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		wc.cancel()
		_ = wc.socket.SetWriteDeadline(time.Now().Add(time.Second))
		_ = wc.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = wc.socket.Close()
		close(wc.done)
	}()

	for {
		select {
		case msg := <-wc.outbox:
			_ = wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wc.socket.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Msg("websocket write")
				return
			}
		case <-ping.C:
			_ = wc.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wc.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-wc.ctx.Done():
			return
		}
	}
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func errorMsg(code string) errorMessage {
	return errorMessage{Type: "error", Error: code}
}
