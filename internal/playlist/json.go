package playlist

import (
	"encoding/json"
	"fmt"
)

type videoJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Fetched     bool   `json:"fetched"`
}

type playlistJSON struct {
	Title    string  `json:"title"`
	NumItems int     `json:"numItems"`
	Videos   []Video `json:"videos"`
	URL      string  `json:"url"`
}

// Stored documents must carry every field; the pointers let decoding tell a
// missing key from a zero value.
type videoFields struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	PublishedAt *string `json:"publishedAt"`
	URL         *string `json:"url"`
	Fetched     *bool   `json:"fetched"`
}

type playlistFields struct {
	Title    *string  `json:"title"`
	NumItems *int     `json:"numItems"`
	Videos   *[]Video `json:"videos"`
	URL      *string  `json:"url"`
}

// MarshalJSON writes the video including its derived url.
func (v Video) MarshalJSON() ([]byte, error) {
	return json.Marshal(videoJSON{
		ID:          v.ID,
		Title:       v.Title,
		PublishedAt: v.PublishedAt,
		URL:         v.URL(),
		Fetched:     v.Fetched,
	})
}

// UnmarshalJSON requires the full stored shape. The url is derived from the id
// and is not read back.
func (v *Video) UnmarshalJSON(data []byte) error {
	var doc videoFields
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	switch {
	case doc.ID == nil:
		return missingField("videos[].id")
	case doc.Title == nil:
		return missingField("videos[].title")
	case doc.PublishedAt == nil:
		return missingField("videos[].publishedAt")
	case doc.URL == nil:
		return missingField("videos[].url")
	case doc.Fetched == nil:
		return missingField("videos[].fetched")
	}
	*v = Video{
		ID:          *doc.ID,
		Title:       *doc.Title,
		PublishedAt: *doc.PublishedAt,
		Fetched:     *doc.Fetched,
	}
	return nil
}

// MarshalJSON materializes numItems and url alongside the stored fields.
func (p *Playlist) MarshalJSON() ([]byte, error) {
	videos := p.videos
	if videos == nil {
		videos = []Video{}
	}
	return json.Marshal(playlistJSON{
		Title:    p.title,
		NumItems: p.NumItems(),
		Videos:   videos,
		URL:      p.URL(),
	})
}

// UnmarshalJSON requires the full stored shape. numItems and url are derived
// from videos, so the stored values are not read back.
func (p *Playlist) UnmarshalJSON(data []byte) error {
	var doc playlistFields
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	switch {
	case doc.Title == nil:
		return missingField("title")
	case doc.NumItems == nil:
		return missingField("numItems")
	case doc.Videos == nil:
		return missingField("videos")
	case doc.URL == nil:
		return missingField("url")
	}
	videos := *doc.Videos
	if videos == nil {
		videos = make([]Video, 0)
	}
	p.title = *doc.Title
	p.videos = videos
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("playlist document: missing field %q", name)
}
