package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/geometry"
	"github.com/Zachkp/showcase/internal/navigation"
	"github.com/Zachkp/showcase/internal/session"
	"github.com/Zachkp/showcase/internal/tabs"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 64 << 10
)

var errInvalidMessage = errors.New("invalid message")

// inbound is a message from the page. Sections maps a section id to its
// viewport-relative box, or null while unresolved.
type inbound struct {
	Type           string                    `json:"type"`
	ScrollY        float64                   `json:"scrollY"`
	ViewportHeight float64                   `json:"viewportHeight"`
	Sections       map[string]*geometry.Rect `json:"sections"`
	Section        string                    `json:"section"`
	Index          *int                      `json:"index"`
	DX             float64                   `json:"dx"`
	Group          string                    `json:"group"`
	Key            string                    `json:"key"`
}

// outbound is a message to the page.
type outbound struct {
	Type       string                     `json:"type"`
	Session    string                     `json:"session,omitempty"`
	Navigation *navigation.State          `json:"navigation,omitempty"`
	Scroll     *navigation.ScrollCommand  `json:"scroll,omitempty"`
	Carousel   *carousel.RenderDescriptor `json:"carousel,omitempty"`
	Tabs       *tabs.State                `json:"tabs,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

// wsOutbox writes session output to the connection. The session loop and
// the read loop both write, so writes are serialized here.
type wsOutbox struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *zap.Logger
}

func (o *wsOutbox) send(m outbound) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := o.conn.WriteJSON(m); err != nil {
		o.logger.Debug("websocket write failed", zap.String("type", m.Type), zap.Error(err))
	}
}

func (o *wsOutbox) Navigation(s navigation.State) {
	o.send(outbound{Type: "navigation", Navigation: &s})
}

func (o *wsOutbox) ScrollTo(c navigation.ScrollCommand) {
	o.send(outbound{Type: "scroll_to", Scroll: &c})
}

func (o *wsOutbox) Render(d carousel.RenderDescriptor) {
	o.send(outbound{Type: "render", Carousel: &d})
}

func (o *wsOutbox) Tabs(s tabs.State) {
	o.send(outbound{Type: "tabs", Tabs: &s})
}

func (o *wsOutbox) sendError(msg string) {
	o.send(outbound{Type: "error", Error: msg})
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	id := uuid.NewString()
	logger := s.logger.Named("session").With(zap.String("session", id))
	out := &wsOutbox{conn: conn, logger: logger}

	sess := session.New(id, s.sessionConfig(), s.sessionContent(), s.clock, out, logger)
	if !s.register(sess, conn) {
		sess.Close()
		return
	}
	defer s.unregister(sess)

	// Greet with the session id, then the initial state
	out.send(outbound{Type: "session", Session: id})
	sess.Start()
	logger.Debug("session started")

	limiter := rate.NewLimiter(rate.Limit(s.cfg.CommandRate), s.cfg.CommandBurst)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Info("websocket read failed", zap.Error(err))
			}
			logger.Debug("session ended")
			return
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			out.sendError("invalid message format")
			continue
		}
		if err := applyMessage(sess, msg, limiter, logger); err != nil {
			out.sendError(err.Error())
		}
	}
}

// Route one inbound message to the session. Scroll and transition_complete
// are never rate limited.
func applyMessage(sess *session.Session, msg inbound, limiter *rate.Limiter, logger *zap.Logger) error {
	switch msg.Type {
	case "scroll":
		geo := make(geometry.Snapshot, len(msg.Sections))
		for id, r := range msg.Sections {
			if r != nil {
				geo[id] = *r
			}
		}
		sess.Scroll(msg.ScrollY, msg.ViewportHeight, geo)
		return nil
	case "transition_complete":
		sess.TransitionComplete()
		return nil
	case "navigate", "menu", "next", "previous", "jump", "swipe", "select":
	default:
		return fmt.Errorf("%w: unknown type %q", errInvalidMessage, msg.Type)
	}

	if msg.Type == "jump" && msg.Index == nil {
		return fmt.Errorf("%w: jump needs an index", errInvalidMessage)
	}
	if !limiter.Allow() {
		logger.Debug("command rate limited", zap.String("type", msg.Type))
		return nil
	}

	switch msg.Type {
	case "navigate":
		sess.NavigateTo(msg.Section)
	case "menu":
		sess.ToggleMenu()
	case "next":
		sess.Next()
	case "previous":
		sess.Previous()
	case "jump":
		sess.JumpTo(*msg.Index)
	case "swipe":
		sess.Swipe(msg.DX)
	case "select":
		sess.Select(msg.Group, msg.Key)
	}
	return nil
}
