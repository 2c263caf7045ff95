package kitsu

import "kitsustats-api/internal/models"

// FilterLibraryEntriesForType keeps the entries that reference media of the given type.
func FilterLibraryEntriesForType(entries []models.LibraryEntry, mediaType models.MediaType) []models.LibraryEntry {
	out := make([]models.LibraryEntry, 0, len(entries))
	for _, e := range entries {
		rel, ok := e.Relationships.For(mediaType)
		if !ok {
			return out
		}
		if rel.Data != nil {
			out = append(out, e)
		}
	}
	return out
}
