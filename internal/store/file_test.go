package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformlabs/pulse/pkg/models"
)

func TestFileStore_LoadMissingReturnsEmptyCollection(t *testing.T) {
	s := NewFileStore(t.TempDir())

	events, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())
	in := []models.MarketingEvent{
		{
			ID:        "evt-1",
			Name:      "Launch",
			Type:      models.EventFlagship,
			Status:    models.EventActive,
			StartDate: "2026-03-01",
			EventDate: "2026-03-01",
			EndDate:   "2026-03-10",
			Goals:     models.SocialGoals{Linkedin: 10, Twitter: 5},
			Posts: []models.PostMetric{
				{Platform: models.PlatformLinkedin, PostID: "p1", Impressions: 1200},
			},
		},
		{
			ID:        "evt-2",
			Name:      "Meetup",
			Type:      models.EventCommunity,
			Status:    models.EventUpcoming,
			StartDate: "2026-04-01",
		},
	}

	require.NoError(t, s.Save(context.Background(), in))

	out, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileStore_SaveReplacesWholeDocument(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []models.MarketingEvent{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, s.Save(ctx, []models.MarketingEvent{{ID: "c"}}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ID)
}

func TestFileStore_MeasuredMarkerSurvivesRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []models.MarketingEvent{
		{ID: "unmeasured"},
		{ID: "measured-empty", Posts: []models.PostMetric{}},
	}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Unmeasured stays nil; measured-but-empty stays an empty slice.
	assert.Nil(t, out[0].Posts)
	assert.NotNil(t, out[1].Posts)
	assert.Empty(t, out[1].Posts)
}

func TestFileStore_LoadCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EventsDocument), []byte("{{"), 0o644))

	_, err := NewFileStore(dir).Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_Ping(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, NewFileStore(dir).Ping(context.Background()))

	missing := NewFileStore(filepath.Join(dir, "does", "not", "exist"))
	assert.Error(t, missing.Ping(context.Background()))
}
