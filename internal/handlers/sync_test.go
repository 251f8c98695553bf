package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transformlabs/pulse/internal/social"
	"github.com/transformlabs/pulse/pkg/models"
)

// memStore records saves in memory so tests can observe the exact
// collection the syncer wrote, including nil-versus-empty Posts.
type memStore struct {
	events []models.MarketingEvent
	saves  int
}

func (m *memStore) Load(_ context.Context) ([]models.MarketingEvent, error) {
	return m.events, nil
}

func (m *memStore) Save(_ context.Context, events []models.MarketingEvent) error {
	m.events = events
	m.saves++
	return nil
}

func (m *memStore) Ping(_ context.Context) error { return nil }

// flakyFetcher fails for the platforms in failOn and returns one post
// otherwise.
type flakyFetcher struct {
	failOn map[models.Platform]bool
	calls  []models.Platform
}

func (f *flakyFetcher) GetPosts(_ context.Context, platform models.Platform, _ string, _, _ time.Time) ([]models.PostMetric, error) {
	f.calls = append(f.calls, platform)
	if f.failOn[platform] {
		return nil, errors.New("platform API unavailable")
	}
	return []models.PostMetric{{Platform: platform, PostID: "p-" + string(platform)}}, nil
}

func syncFixture() *memStore {
	return &memStore{events: []models.MarketingEvent{
		{
			ID:        "active-1",
			Name:      "Launch",
			Status:    models.EventActive,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-31",
			Goals:     models.SocialGoals{Linkedin: 10, Twitter: 5},
		},
		{
			ID:        "upcoming-1",
			Name:      "Meetup",
			Status:    models.EventUpcoming,
			StartDate: "2026-05-01",
			Goals:     models.SocialGoals{Linkedin: 2},
		},
	}}
}

func TestSyncPosts_MeasuresActiveEventsOnly(t *testing.T) {
	st := syncFixture()
	syncer := NewSyncer(st, social.NewMockFetcher(testLogger()), testLogger(), nil)

	require.NoError(t, syncer.SyncPosts(context.Background()))
	require.Equal(t, 1, st.saves)

	// Two goal platforms, two mock posts each.
	require.Len(t, st.events[0].Posts, 4)
	assert.Equal(t, models.PlatformLinkedin, st.events[0].Posts[0].Platform)

	// Non-active events are left unmeasured.
	assert.Nil(t, st.events[1].Posts)
}

func TestSyncPosts_OnlyGoalPlatformsAreQueried(t *testing.T) {
	fetcher := &flakyFetcher{}
	syncer := NewSyncer(syncFixture(), fetcher, testLogger(), nil)

	require.NoError(t, syncer.SyncPosts(context.Background()))
	assert.Equal(t, []models.Platform{models.PlatformLinkedin, models.PlatformTwitter}, fetcher.calls)
}

func TestSyncPosts_PlatformFailureSkipsPlatformNotRun(t *testing.T) {
	st := syncFixture()
	fetcher := &flakyFetcher{failOn: map[models.Platform]bool{models.PlatformLinkedin: true}}
	syncer := NewSyncer(st, fetcher, testLogger(), nil)

	require.NoError(t, syncer.SyncPosts(context.Background()))

	require.Len(t, st.events[0].Posts, 1)
	assert.Equal(t, models.PlatformTwitter, st.events[0].Posts[0].Platform)
}

func TestSyncPosts_AllFailuresStillMarkMeasured(t *testing.T) {
	st := syncFixture()
	fetcher := &flakyFetcher{failOn: map[models.Platform]bool{
		models.PlatformLinkedin: true,
		models.PlatformTwitter:  true,
	}}
	syncer := NewSyncer(st, fetcher, testLogger(), nil)

	require.NoError(t, syncer.SyncPosts(context.Background()))

	// Measured with nothing found is an empty slice, not nil.
	assert.NotNil(t, st.events[0].Posts)
	assert.Empty(t, st.events[0].Posts)
}

func TestSyncPosts_NoActiveEventsSkipsSave(t *testing.T) {
	st := &memStore{events: []models.MarketingEvent{
		{ID: "done", Status: models.EventCompleted},
	}}
	fetcher := &flakyFetcher{}
	syncer := NewSyncer(st, fetcher, testLogger(), nil)

	require.NoError(t, syncer.SyncPosts(context.Background()))
	assert.Empty(t, fetcher.calls)
	assert.Zero(t, st.saves)
}
