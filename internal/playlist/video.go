package playlist

import (
	"fmt"
	"strings"
)

// WatchBaseURL prefixes a video id to form its watch page URL.
const WatchBaseURL = "https://www.youtube.com/watch?v="

// Video is a single YouTube video reference plus optional fetched metadata.
// Identity is the id alone; see Key.
type Video struct {
	ID          string
	Title       string
	PublishedAt string
	Fetched     bool
}

// NewVideo returns an unfetched placeholder for id.
func NewVideo(id string) Video {
	return Video{ID: id}
}

// VideoFromRecord builds a fetched Video from a provider record.
func VideoFromRecord(rec Record) Video {
	return Video{
		ID:          rec.ID,
		Title:       rec.Title,
		PublishedAt: rec.PublishedAt,
		Fetched:     true,
	}
}

// Key returns the identity key used by every set-like playlist operation.
func (v Video) Key() string {
	return v.ID
}

// URL returns the watch page URL derived from the video id.
func (v Video) URL() string {
	return WatchBaseURL + v.ID
}

// PublishedDate returns the date portion of PublishedAt, or "unknown date"
// when the provider did not report one.
func (v Video) PublishedDate() string {
	date, _, _ := strings.Cut(v.PublishedAt, "T")
	if strings.TrimSpace(date) == "" {
		return "unknown date"
	}
	return date
}

func (v Video) String() string {
	return fmt.Sprintf("%s\n\tID: %s\n\tPublished at: %s\n\tURL: %s", v.Title, v.ID, v.PublishedDate(), v.URL())
}
