package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regradar/compliance-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testProfile(name string) *model.CompanyProfile {
	scraped := time.Now().UTC().Add(-time.Hour)
	return &model.CompanyProfile{
		CompanyName:      name,
		WebsiteURL:       "https://" + name + ".example",
		Industry:         "Financial technology",
		Description:      "A payment provider.",
		FoundedYear:      1998,
		RegulatoryTopics: []model.Topic{model.TopicBaFin, model.TopicGDPR},
		SourceType:       model.SourceCombined,
		ScrapeStatus:     model.ScrapeStatusSuccess,
		LastScrapedAt:    &scraped,
	}
}

func TestSQLite_UpsertAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	stored, err := st.UpsertProfile(ctx, testProfile("acme"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.NotNil(t, stored.CreatedAt)

	got, err := st.GetProfile(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.CompanyName)
	assert.Equal(t, "Financial technology", got.Industry)
	assert.Equal(t, 1998, got.FoundedYear)
	assert.Equal(t, []model.Topic{model.TopicBaFin, model.TopicGDPR}, got.RegulatoryTopics)
	assert.Equal(t, model.ScrapeStatusSuccess, got.ScrapeStatus)
}

func TestSQLite_Upsert_KeepsIdentityOnRerun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := st.UpsertProfile(ctx, testProfile("acme"))
	require.NoError(t, err)

	update := testProfile("acme")
	update.Industry = "Payments"
	second, err := st.UpsertProfile(ctx, update)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	assert.Equal(t, "Payments", second.Industry)

	// Still one row.
	all, err := st.ListProfiles(ctx, ProfileFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_GetProfile_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_ListProfiles_IndustryFilter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertProfile(ctx, testProfile("acme"))
	require.NoError(t, err)

	other := testProfile("greenco")
	other.Industry = "Renewable energy"
	_, err = st.UpsertProfile(ctx, other)
	require.NoError(t, err)

	got, err := st.ListProfiles(ctx, ProfileFilter{Industry: "Renewable energy"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "greenco", got[0].CompanyName)
}

func TestSQLite_ListProfiles_LimitOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := st.UpsertProfile(ctx, testProfile(name))
		require.NoError(t, err)
	}

	page, err := st.ListProfiles(ctx, ProfileFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = st.ListProfiles(ctx, ProfileFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestSQLite_DeleteProfile(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertProfile(ctx, testProfile("acme"))
	require.NoError(t, err)

	require.NoError(t, st.DeleteProfile(ctx, "acme"))
	assert.ErrorIs(t, st.DeleteProfile(ctx, "acme"), ErrNotFound)

	_, err = st.GetProfile(ctx, "acme")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_ListStaleProfiles(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	stale := testProfile("old")
	old := time.Now().UTC().Add(-40 * 24 * time.Hour)
	stale.LastScrapedAt = &old
	_, err := st.UpsertProfile(ctx, stale)
	require.NoError(t, err)

	fresh := testProfile("fresh")
	_, err = st.UpsertProfile(ctx, fresh)
	require.NoError(t, err)

	never := testProfile("never")
	never.LastScrapedAt = nil
	_, err = st.UpsertProfile(ctx, never)
	require.NoError(t, err)

	got, err := st.ListStaleProfiles(ctx, 30*24*time.Hour, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].CompanyName)
}
