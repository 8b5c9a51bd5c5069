package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"

	"github.com/coder/websocket"
)

// Transport is one framed-message connection to the engine. Read returns
// (nil, nil) when no message is available yet; that is a "nothing yet"
// poll result, not an error. The connection is established by Connect
// before the session's first read.
type Transport interface {
	Connect(ctx context.Context) error
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Close() error
}

// --- TCPTransport: newline-framed JSON over TCP ---

// TCPTransport speaks the engine's native framing: one JSON document per
// line over a plain TCP connection.
type TCPTransport struct {
	Addr string

	conn   net.Conn
	reader *bufio.Reader
}

func (t *TCPTransport) Connect(ctx context.Context) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", t.Addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", t.Addr, err)
	}
	t.conn = conn
	t.reader = bufio.NewReader(conn)
	return nil
}

func (t *TCPTransport) Read(ctx context.Context) ([]byte, error) {
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return bytes.TrimSpace(line), nil
}

func (t *TCPTransport) Write(ctx context.Context, payload []byte) error {
	framed := append(append([]byte(nil), payload...), '\n')
	if _, err := t.conn.Write(framed); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (t *TCPTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// --- WSTransport: text frames over a websocket ---

// WSTransport connects to an engine that serves the same protocol over a
// websocket endpoint, one envelope per text frame.
type WSTransport struct {
	URL string

	conn *websocket.Conn
}

func (t *WSTransport) Connect(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, t.URL, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", t.URL, err)
	}
	t.conn = conn
	return nil
}

func (t *WSTransport) Read(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return bytes.TrimSpace(data), nil
}

func (t *WSTransport) Write(ctx context.Context, payload []byte) error {
	if err := t.conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (t *WSTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close(websocket.StatusNormalClosure, "session ended")
}
