package kitsu

import (
	"testing"

	"kitsustats-api/internal/models"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFixMediaURL(t *testing.T) {
	require.Equal(t, "https://media.kitsu.app/x.png", FixMediaURL("https://media.kitsu.io/x.png"))
	require.Equal(t, "https://media.kitsu.app/x.png", FixMediaURL("https://media.kitsu.app/x.png"))
	require.Equal(t, "https://example.com/a.png", FixMediaURL("https://example.com/a.png"))
	require.Equal(t, "", FixMediaURL(""))
}

func TestFixMediaURLPtr_Nil(t *testing.T) {
	require.Nil(t, FixMediaURLPtr(nil))

	got := FixMediaURLPtr(strPtr("https://media.kitsu.io/avatars/1.jpg"))
	require.NotNil(t, got)
	require.Equal(t, "https://media.kitsu.app/avatars/1.jpg", *got)
}

func TestNormalizeStats(t *testing.T) {
	stats := models.UserStats{
		UserID:    "1",
		AvatarURL: strPtr("https://media.kitsu.io/a.png"),
		LibraryEntries: []models.LibraryEntry{
			{ID: "e1", PosterImageURL: strPtr("https://media.kitsu.io/p.png")},
			{ID: "e2"},
		},
	}
	NormalizeStats(&stats)

	require.Equal(t, "https://media.kitsu.app/a.png", *stats.AvatarURL)
	require.Equal(t, "https://media.kitsu.app/p.png", *stats.LibraryEntries[0].PosterImageURL)
	require.Nil(t, stats.LibraryEntries[1].PosterImageURL)
}

func TestFilterLibraryEntriesForType(t *testing.T) {
	anime := models.LibraryEntry{ID: "a", Relationships: models.LibraryRelationships{
		Anime: models.Relationship{Data: &models.ResourceIdentifier{Type: "anime", ID: "1"}},
	}}
	manga := models.LibraryEntry{ID: "m", Relationships: models.LibraryRelationships{
		Manga: models.Relationship{Data: &models.ResourceIdentifier{Type: "manga", ID: "2"}},
	}}
	entries := []models.LibraryEntry{anime, manga}

	got := FilterLibraryEntriesForType(entries, models.MediaAnime)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)

	got = FilterLibraryEntriesForType(entries, models.MediaManga)
	require.Len(t, got, 1)
	require.Equal(t, "m", got[0].ID)

	require.Empty(t, FilterLibraryEntriesForType(entries, "drama"))
	require.Empty(t, FilterLibraryEntriesForType(nil, models.MediaAnime))
}
