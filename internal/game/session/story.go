package session

import "time"

// EntryKind tags a story log entry.
type EntryKind string

const (
	// EntryStory marks generated narrative content.
	EntryStory EntryKind = "story"
	// EntryAction marks raw player input.
	EntryAction EntryKind = "action"
)

// StoryEntry is one element of the append-only story log. The log is never
// reordered or truncated except by Reset.
type StoryEntry struct {
	Kind EntryKind
	// Content is the narrative or action text.
	Content string
	// Location is the originating location name, when known.
	Location string
	// Timestamp is the entry creation time.
	Timestamp time.Time
}
