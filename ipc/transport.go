package ipc

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Transport moves whole envelopes. The stream transport frames them with a
// length prefix; the websocket transport sends one text message each.
type Transport interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(Envelope) error
	Close() error
}

type streamTransport struct {
	rwc io.ReadWriteCloser
}

// NewStreamTransport frames envelopes over a byte stream such as a unix
// socket.
func NewStreamTransport(rwc io.ReadWriteCloser) Transport {
	return &streamTransport{rwc: rwc}
}

func (t *streamTransport) ReadEnvelope() (Envelope, error)  { return ReadEnvelope(t.rwc) }
func (t *streamTransport) WriteEnvelope(env Envelope) error { return WriteEnvelope(t.rwc, env) }
func (t *streamTransport) Close() error                     { return t.rwc.Close() }

const (
	wsWriteTimeout = 5 * time.Second
	wsReadTimeout  = 60 * time.Second
)

type wsTransport struct {
	conn *websocket.Conn
}

// NewWSTransport carries envelopes as websocket text messages.
func NewWSTransport(conn *websocket.Conn) Transport {
	conn.SetReadLimit(maxFrame)
	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadEnvelope() (Envelope, error) {
	_ = t.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	_, msg, err := t.conn.ReadMessage()
	if err != nil {
		return Envelope{}, fmt.Errorf("read message: %w", err)
	}
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

func (t *wsTransport) WriteEnvelope(env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	_ = t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := t.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (t *wsTransport) Close() error { return t.conn.Close() }

// WSHandler upgrades each request and hands the transport to serve, which
// owns it from then on.
func WSHandler(serve func(Transport)) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     func(r *http.Request) bool { return true }, // local bridge only
	}
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		serve(NewWSTransport(conn))
	}
}
