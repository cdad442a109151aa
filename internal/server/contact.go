package server

import (
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/store"
)

type contactForm struct {
	Name    string `form:"name" json:"name" binding:"required,max=200"`
	Email   string `form:"email" json:"email" binding:"required,email,max=320"`
	Subject string `form:"subject" json:"subject" binding:"max=200"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

// Handle contact form submission
func (s *Server) handleContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide your name, a valid email and a message."})
		return
	}

	msg := store.Message{
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Subject:   strings.TrimSpace(form.Subject),
		Body:      form.Message,
		CreatedAt: s.now(),
	}
	// Store first, then try to relay by email
	id, err := s.store.SaveMessage(c.Request.Context(), msg)
	if err != nil {
		s.logger.Error("saving contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sorry, there was an error sending your message. Please try again later."})
		return
	}
	msg.ID = id

	if s.mailer != nil {
		if err := s.mailer.Send(msg); err != nil {
			s.logger.Warn("relaying contact message", zap.Int64("id", id), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": "Thank you for your message! I'll get back to you soon."})
}

// SMTPMailer relays contact messages through an SMTP server with PLAIN auth.
type SMTPMailer struct {
	host, port string
	user, pass string
	to         string
	send       func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for cfg, or nil when SMTP is not configured.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if !cfg.SMTPEnabled() {
		return nil
	}
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   cfg.ToEmail,
		send: smtp.SendMail,
	}
}

// Send implements Mailer.
func (m *SMTPMailer) Send(msg store.Message) error {
	subject := "Portfolio Contact: " + headerSafe(msg.Name)
	if msg.Subject != "" {
		subject += " - " + headerSafe(msg.Subject)
	}
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Body)

	raw := []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := m.send(m.host+":"+m.port, auth, m.user, []string{m.to}, raw); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// Strip line breaks from form input used in headers
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
