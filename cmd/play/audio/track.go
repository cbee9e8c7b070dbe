package audio

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Track is a single playable unit: one audio file with identity and
// optional display metadata. Tracks are immutable once constructed.
type Track struct {
	ID       string        // Unique identifier
	Path     string        // Path to the audio file
	Title    string        // Display title (defaults to filename without extension)
	Duration time.Duration // Known duration, 0 if unknown
}

// NewTrack builds a Track for a local audio file, assigning a fresh ID
// and deriving the title from the filename.
func NewTrack(path string) Track {
	base := filepath.Base(path)
	return Track{
		ID:    uuid.NewString(),
		Path:  path,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}
