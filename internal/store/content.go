package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/content"
)

const aboutMeKey = "about_me"

// Seed writes c into an empty store. It reports false, writing nothing, when
// sections already exist.
func (s *Store) Seed(ctx context.Context, c *content.Content) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sections`).Scan(&n); err != nil {
		return false, fmt.Errorf("counting sections: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, aboutMeKey, c.AboutMe); err != nil {
		return false, fmt.Errorf("seeding about: %w", err)
	}
	for i, sec := range c.Sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections (id, title, nav, position) VALUES (?, ?, ?, ?)`,
			sec.ID, sec.Title, sec.Nav, i); err != nil {
			return false, fmt.Errorf("seeding section %s: %w", sec.ID, err)
		}
	}
	for i, p := range c.Projects {
		tags, err := json.Marshal(nonNil(p.Tags))
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO projects (title, description, image, tags, link, repo_link, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Title, p.Description, p.Image, string(tags), p.Link, p.RepoLink, i); err != nil {
			return false, fmt.Errorf("seeding project %q: %w", p.Title, err)
		}
	}
	for i, sk := range c.Skills {
		skills, err := json.Marshal(nonNil(sk.Skills))
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skill_categories (name, skills, position) VALUES (?, ?, ?)`,
			sk.Name, string(skills), i); err != nil {
			return false, fmt.Errorf("seeding skills %q: %w", sk.Name, err)
		}
	}
	for i, e := range c.Experiences {
		bullets, err := json.Marshal(nonNil(e.BulletPoints))
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO experiences (title, company, start_date, end_date, logo_path, bullet_points, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Title, e.Company, e.StartDate, e.EndDate, e.LogoPath, string(bullets), i); err != nil {
			return false, fmt.Errorf("seeding experience %q: %w", e.Title, err)
		}
	}
	for i, a := range c.Achievements {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO achievements (title, description, icon, position) VALUES (?, ?, ?, ?)`,
			a.Title, a.Description, a.Icon, i); err != nil {
			return false, fmt.Errorf("seeding achievement %q: %w", a.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed: %w", err)
	}
	return true, nil
}

// Content reads the full page content.
func (s *Store) Content(ctx context.Context) (*content.Content, error) {
	c := &content.Content{}

	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, aboutMeKey).Scan(&c.AboutMe)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loading about: %w", err)
	}
	if c.Sections, err = s.Sections(ctx); err != nil {
		return nil, err
	}
	if c.Projects, err = s.Projects(ctx); err != nil {
		return nil, err
	}
	if c.Skills, err = s.SkillCategories(ctx); err != nil {
		return nil, err
	}
	if c.Experiences, err = s.Experiences(ctx); err != nil {
		return nil, err
	}
	if c.Achievements, err = s.Achievements(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Sections lists sections in document order.
func (s *Store) Sections(ctx context.Context) ([]content.Section, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, nav FROM sections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var out []content.Section
	for rows.Next() {
		var sec content.Section
		if err := rows.Scan(&sec.ID, &sec.Title, &sec.Nav); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

// Projects lists carousel items in display order.
func (s *Store) Projects(ctx context.Context) ([]carousel.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, COALESCE(image, ''), tags, COALESCE(link, ''), COALESCE(repo_link, '')
		FROM projects
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var out []carousel.Item
	for rows.Next() {
		var (
			it   carousel.Item
			tags string
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Image, &tags, &it.Link, &it.RepoLink); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &it.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags of project %d: %w", it.ID, err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// SkillCategories lists skill tabs in order.
func (s *Store) SkillCategories(ctx context.Context) ([]content.SkillCategory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, skills FROM skill_categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	var out []content.SkillCategory
	for rows.Next() {
		var (
			sc     content.SkillCategory
			skills string
		)
		if err := rows.Scan(&sc.Name, &skills); err != nil {
			return nil, fmt.Errorf("scanning skills: %w", err)
		}
		if err := json.Unmarshal([]byte(skills), &sc.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills of %q: %w", sc.Name, err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Experiences lists experience tabs in order.
func (s *Store) Experiences(ctx context.Context) ([]content.Experience, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, company, COALESCE(start_date, ''), COALESCE(end_date, ''), COALESCE(logo_path, ''), bullet_points
		FROM experiences
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying experiences: %w", err)
	}
	defer rows.Close()

	var out []content.Experience
	for rows.Next() {
		var (
			e       content.Experience
			bullets string
		)
		if err := rows.Scan(&e.Title, &e.Company, &e.StartDate, &e.EndDate, &e.LogoPath, &bullets); err != nil {
			return nil, fmt.Errorf("scanning experience: %w", err)
		}
		if err := json.Unmarshal([]byte(bullets), &e.BulletPoints); err != nil {
			return nil, fmt.Errorf("decoding bullets of %q: %w", e.Title, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Achievements lists achievement cards in order.
func (s *Store) Achievements(ctx context.Context) ([]content.Achievement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, description, COALESCE(icon, '')
		FROM achievements
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	var out []content.Achievement
	for rows.Next() {
		var a content.Achievement
		if err := rows.Scan(&a.Title, &a.Description, &a.Icon); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
