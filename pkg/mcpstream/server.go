// CLAUDE:SUMMARY MCP over a newline-delimited JSON-RPC byte stream (stdio or any io.Reader/io.Writer pair).
package mcpstream

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hazyhaar/hebmorph/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxMessageBytes bounds a single JSON-RPC line.
const maxMessageBytes = 4 << 20

// Handler serves one MCP session per stream against a shared MCPServer.
type Handler struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

func NewHandler(mcpSrv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mcpServer: mcpSrv, logger: logger}
}

// randomHex returns n random bytes encoded as hex.
func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Serve reads one JSON-RPC message per line from r and writes each response
// as one line to w, until r is exhausted or ctx is cancelled.
func (h *Handler) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionID := "stream_" + randomHex(4)
	sess := newSession(sessionID, w)
	if err := h.mcpServer.RegisterSession(ctx, sess); err != nil {
		return err
	}
	defer h.mcpServer.UnregisterSession(ctx, sessionID)
	h.logger.Info("MCP session starting", "session", sessionID)

	ctx = kit.WithTransport(ctx, "mcp")
	ctx = h.mcpServer.WithContext(ctx, sess)

	go sess.writeNotifications(ctx)

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxMessageBytes)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("MCP session ended", "session", sessionID)
			return ctx.Err()
		case err := <-readErr:
			h.logger.Info("MCP session ended", "session", sessionID)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		case line := <-lines:
			if len(line) == 0 {
				continue
			}
			response := h.mcpServer.HandleMessage(ctx, json.RawMessage(line))
			if response == nil {
				continue
			}
			if err := sess.writeMessage(response); err != nil {
				h.logger.Error("MCP write error", "session", sessionID, "error", err)
				return err
			}
		}
	}
}

// session implements server.ClientSession for a single stream.
type session struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
	writer        io.Writer
	mu            sync.Mutex
}

func newSession(id string, writer io.Writer) *session {
	return &session{
		id:            id,
		notifications: make(chan mcp.JSONRPCNotification, 100),
		writer:        writer,
	}
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

// writeMessage writes msg as a single line. Responses and notifications
// share the writer.
func (s *session) writeMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(data)
	return err
}

func (s *session) writeNotifications(ctx context.Context) {
	for {
		select {
		case notif := <-s.notifications:
			_ = s.writeMessage(notif)
		case <-ctx.Done():
			return
		}
	}
}
