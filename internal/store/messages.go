package store

import (
	"context"
	"fmt"
	"time"
)

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage stores m and returns its id. A zero CreatedAt means now.
func (s *Store) SaveMessage(ctx context.Context, m Message) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Subject, m.Body, m.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("saving message: %w", err)
	}
	return res.LastInsertId()
}

// Messages lists messages, newest first.
func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(subject, ''), message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m  Message
			at int64
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &at); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.CreatedAt = time.Unix(at, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessage removes one message. It returns ErrNotFound when id does
// not exist.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting message %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
