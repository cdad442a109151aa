package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/showcase/internal/store"
)

const adminCookie = "admin_token"

// Initialize admin token and the salt for IP hashing
func (s *Server) initAdmin() error {
	token, err := generateToken()
	if err != nil {
		return fmt.Errorf("generating admin token: %w", err)
	}
	salt, err := generateToken()
	if err != nil {
		return fmt.Errorf("generating hashing salt: %w", err)
	}
	s.adminToken = token
	s.hashingSalt = salt // Use for IP hashing

	if s.cfg.AdminPassword == "" {
		s.logger.Warn("admin login disabled: SHOWCASE_ADMIN_PASSWORD is not set")
	}
	s.logger.Info("visitor tracking enabled with hashed IP addresses")
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Hash IP address for privacy (consistent per IP while the process lives)
func (s *Server) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(h.Sum(nil))[:16] // Truncate for storage
}

// Middleware to check admin authentication
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/favicon", "/ws", "/healthz"}

// Privacy-conscious visitor tracking middleware
func (s *Server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, admin pages and the session socket
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: s.now(),
		}
		// Track visitor with hashed IP in background
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, visit); err != nil {
				s.logger.Warn("recording visit failed", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// Drop visits past the retention window
func (s *Server) cleanupOldVisitors(ctx context.Context) (int64, error) {
	removed, err := s.store.CleanupVisitors(ctx, s.now().Add(-s.cfg.VisitorRetention))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("privacy cleanup removed old visitor records", zap.Int64("removed", removed))
	}
	return removed, nil
}

// RunRetention cleans up old visits now and then every interval until ctx is
// done.
func (s *Server) RunRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.cleanupOldVisitors(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("privacy cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.POST("/admin/login", s.handleAdminLogin)

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.logger.Info("admin logout", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	})

	// Protected admin API
	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			s.logger.Error("loading admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/api/messages", func(c *gin.Context) {
		msgs, err := s.store.Messages(c.Request.Context(), 200)
		if err != nil {
			s.logger.Error("loading messages", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	})

	admin.DELETE("/api/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		err = s.store.DeleteMessage(c.Request.Context(), id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		case err != nil:
			s.logger.Error("deleting message", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		default:
			s.logger.Info("message deleted by admin", zap.Int64("id", id), zap.String("client", s.hashIP(c.ClientIP())))
			c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
		}
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		removed, err := s.cleanupOldVisitors(c.Request.Context())
		if err != nil {
			s.logger.Error("privacy cleanup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("admin stats exported", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	if s.cfg.AdminPassword == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin login is disabled"})
		return
	}
	username := c.PostForm("username")
	password := c.PostForm("password")

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		s.logger.Warn("failed admin login", zap.String("client", s.hashIP(c.ClientIP())))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
	s.logger.Info("admin login", zap.String("client", s.hashIP(c.ClientIP())))
	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}
