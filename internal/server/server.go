// Package server is the HTTP face of the portfolio: the page itself, the
// WebSocket that carries each visitor's interaction session, the contact
// endpoint, visit tracking and the admin API.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Zachkp/showcase/internal/clock"
	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/content"
	"github.com/Zachkp/showcase/internal/logging"
	"github.com/Zachkp/showcase/internal/session"
	"github.com/Zachkp/showcase/internal/store"
)

// Mailer relays contact messages.
type Mailer interface {
	Send(m store.Message) error
}

// Deps are the server's collaborators. Logger, Clock and Now default when
// nil; Mailer may stay nil. Without Templates the page templates are loaded
// from Config.Templates.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *store.Store
	Templates *template.Template
	Clock     clock.Clock
	Mailer    Mailer
	Now       func() time.Time
}

// Server owns the gin engine and the live sessions.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.Store
	clock   clock.Clock
	mailer  Mailer
	now     func() time.Time
	content *content.Content

	engine   *gin.Engine
	upgrader websocket.Upgrader

	adminToken  string
	hashingSalt string

	mu       sync.Mutex
	sessions map[*session.Session]*websocket.Conn
	closed   bool

	background sync.WaitGroup
}

// New loads the page content from the store and builds the routes.
func New(ctx context.Context, d Deps) (*Server, error) {
	if d.Config == nil || d.Store == nil {
		return nil, fmt.Errorf("server: config and store are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	c, err := d.Store.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("server: loading content: %w", err)
	}

	s := &Server{
		cfg:      d.Config,
		logger:   d.Logger,
		store:    d.Store,
		clock:    d.Clock,
		mailer:   d.Mailer,
		now:      d.Now,
		content:  c,
		sessions: make(map[*session.Session]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if err := s.initAdmin(); err != nil {
		return nil, err
	}

	s.engine, err = s.routes(d.Templates)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes(tmpl *template.Template) (*gin.Engine, error) {
	r := gin.New()
	r.Use(logging.GinLogger(s.logger.Named("http")), gin.Recovery())

	if tmpl != nil {
		r.SetHTMLTemplate(tmpl)
	} else {
		// LoadHTMLGlob panics when nothing matches
		matches, err := filepath.Glob(s.cfg.Templates)
		if err != nil {
			return nil, fmt.Errorf("server: templates pattern %q: %w", s.cfg.Templates, err)
		}
		if len(matches) > 0 {
			r.LoadHTMLGlob(s.cfg.Templates)
		} else {
			s.logger.Warn("no page templates found, serving the fallback page", zap.String("pattern", s.cfg.Templates))
			r.SetHTMLTemplate(template.Must(template.New("index.html").Parse(fallbackIndex)))
		}
	}

	// Static files
	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.visitorTrackingMiddleware())

	// Home page route
	r.GET("/", s.handleIndex)
	// Interaction session for the page
	r.GET("/ws", s.handleWebSocket)
	r.GET("/api/content", s.handleContent)
	// Contact form endpoint
	r.POST("/contact", s.handleContact)
	r.GET("/healthz", s.handleHealth)

	s.setupAdminRoutes(r)
	return r, nil
}

func (s *Server) handleIndex(c *gin.Context) {
	var nav []content.Section
	for _, sec := range s.content.Sections {
		if sec.Nav {
			nav = append(nav, sec)
		}
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"aboutMeContent": s.content.AboutMe,
		"navSections":    nav,
		"sections":       s.content.Sections,
		"projects":       s.content.Projects,
		"skills":         s.content.Skills,
		"experiences":    s.content.Experiences,
		"achievements":   s.content.Achievements,
	})
}

func (s *Server) handleContent(c *gin.Context) {
	c.JSON(http.StatusOK, s.content)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) sessionConfig() session.Config {
	return session.Config{
		AutoplayInterval:  s.cfg.AutoplayInterval,
		SwipeThreshold:    s.cfg.SwipeThreshold,
		ScrolledThreshold: s.cfg.ScrolledThreshold,
		TabGuard:          s.cfg.TabGuard,
	}
}

func (s *Server) sessionContent() session.Content {
	return session.Content{
		Sections: s.content.SectionIDs(),
		Items:    s.content.Projects,
		TabGroups: map[string][]string{
			"skills":     s.content.SkillNames(),
			"experience": s.content.ExperienceTitles(),
		},
	}
}

// Track a live session; false once the server is shutting down
func (s *Server) register(sess *session.Session, conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.sessions[sess] = conn
	return true
}

func (s *Server) unregister(sess *session.Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	sess.Close()
}

// ActiveSessions reports how many WebSocket sessions are live.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends every live session and waits for background visit recording.
// It may run while handlers are tearing down their own sessions.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	live := s.sessions
	s.sessions = make(map[*session.Session]*websocket.Conn)
	s.mu.Unlock()

	for sess, conn := range live {
		sess.Close()
		conn.Close()
	}
	s.background.Wait()
}

const fallbackIndex = `<!DOCTYPE html>
<html><head><title>Portfolio</title></head>
<body>
{{range .sections}}<section id="{{.ID}}"><h2>{{.Title}}</h2></section>
{{end}}
</body></html>`
