package models

import "time"

// MediaType names a Kitsu media kind a library entry can point at.
type MediaType string

const (
	MediaAnime MediaType = "anime"
	MediaManga MediaType = "manga"
)

// UserStats is the cached statistics snapshot of one Kitsu user.
type UserStats struct {
	UserID         string         `json:"userId"`
	Name           string         `json:"name"`
	AvatarURL      *string        `json:"avatarUrl"`
	LibraryEntries []LibraryEntry `json:"libraryEntries"`
	FetchedAt      time.Time      `json:"fetchedAt"`
}

// LibraryEntry is a single entry of a user's library.
type LibraryEntry struct {
	ID             string               `json:"id"`
	Status         string               `json:"status"`
	Progress       int                  `json:"progress"`
	RatingTwenty   *int                 `json:"ratingTwenty"`
	PosterImageURL *string              `json:"posterImageUrl"`
	Relationships  LibraryRelationships `json:"relationships"`
}

// LibraryRelationships links an entry to the media it tracks. Exactly one side
// is expected to carry data.
type LibraryRelationships struct {
	Anime Relationship `json:"anime"`
	Manga Relationship `json:"manga"`
}

// Relationship mirrors a JSON:API relationship; Data is nil when unset.
type Relationship struct {
	Data *ResourceIdentifier `json:"data"`
}

// ResourceIdentifier identifies a related resource.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// For returns the relationship for the given media type and whether the type is known.
func (r LibraryRelationships) For(mediaType MediaType) (Relationship, bool) {
	switch mediaType {
	case MediaAnime:
		return r.Anime, true
	case MediaManga:
		return r.Manga, true
	default:
		return Relationship{}, false
	}
}
