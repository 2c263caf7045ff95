// Package kitsu holds helpers for data returned by Kitsu and its search index.
package kitsu

import (
	"strings"

	"kitsustats-api/internal/models"
)

const (
	legacyMediaHost = "https://media.kitsu.io"
	mediaHost       = "https://media.kitsu.app"
)

// FixMediaURL rewrites media URLs that still point at the legacy media domain.
// The search index returns them until Kitsu finishes its domain migration.
func FixMediaURL(url string) string {
	if url == "" {
		return url
	}
	return strings.Replace(url, legacyMediaHost, mediaHost, 1)
}

// FixMediaURLPtr is FixMediaURL for optional URLs; nil is returned unchanged.
func FixMediaURLPtr(url *string) *string {
	if url == nil {
		return nil
	}
	fixed := FixMediaURL(*url)
	return &fixed
}

// NormalizeStats fixes every media URL of a snapshot in place.
func NormalizeStats(stats *models.UserStats) {
	stats.AvatarURL = FixMediaURLPtr(stats.AvatarURL)
	for i := range stats.LibraryEntries {
		stats.LibraryEntries[i].PosterImageURL = FixMediaURLPtr(stats.LibraryEntries[i].PosterImageURL)
	}
}
