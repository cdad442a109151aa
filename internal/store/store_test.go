package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/showcase/internal/content"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "showcase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeedAndLoadContent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	want := content.Default()

	seeded, err := s.Seed(ctx, want)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.Seed(ctx, want)
	require.NoError(t, err)
	assert.False(t, seeded, "seeding twice must not duplicate content")

	got, err := s.Content(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.AboutMe, got.AboutMe)
	assert.Equal(t, want.Sections, got.Sections)
	assert.Equal(t, want.Skills, got.Skills)
	assert.Equal(t, want.Experiences, got.Experiences)
	assert.Equal(t, want.Achievements, got.Achievements)

	require.Len(t, got.Projects, len(want.Projects))
	for i, p := range got.Projects {
		assert.NotZero(t, p.ID)
		assert.Equal(t, want.Projects[i].Title, p.Title)
		assert.Equal(t, want.Projects[i].Tags, p.Tags)
	}
}

func TestContent_EmptyStore(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Content(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Sections)
	assert.Empty(t, got.Projects)
	assert.Empty(t, got.Achievements)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "showcase.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.Seed(ctx, content.Default())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	sections, err := s.Sections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, len(content.Default().Sections))
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id1, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Body: "hi", CreatedAt: first})
	require.NoError(t, err)
	id2, err := s.SaveMessage(ctx, Message{Name: "Bob", Email: "bob@example.com", Subject: "job", Body: "hello", CreatedAt: first.Add(time.Hour)})
	require.NoError(t, err)

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, id2, msgs[0].ID)
	assert.Equal(t, "job", msgs[0].Subject)
	assert.Equal(t, first, msgs[1].CreatedAt)

	require.NoError(t, s.DeleteMessage(ctx, id1))
	assert.ErrorIs(t, s.DeleteMessage(ctx, id1), ErrNotFound)
}

func TestVisitorsStatsAndCleanup(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

	visits := []Visit{
		{HashedIP: "aaaa", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "aaaa", Path: "/", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "bbbb", Path: "/api/content", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "cccc", Path: "/", Timestamp: now.Add(-400 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}
	_, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Body: "hi"})
	require.NoError(t, err)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 1, stats.TotalMessages)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathCount{Path: "/", Views: 3}, stats.TopPaths[0])
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, now.Add(-time.Hour), stats.RecentVisitors[0].Timestamp)

	removed, err := s.CleanupVisitors(ctx, now.Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	recent, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
