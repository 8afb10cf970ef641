package playlist

import (
	"fmt"
	"strings"
)

const (
	// PlaylistBaseURL is the anonymous playlist endpoint; video ids are
	// appended comma separated.
	PlaylistBaseURL = "http://www.youtube.com/watch_videos?video_ids="
	// DefaultTitle names playlists that were built without one.
	DefaultTitle = "untitled"
)

// Playlist is a titled, ordered collection of videos unique by Video.Key.
type Playlist struct {
	title  string
	videos []Video
}

// New returns an empty playlist. A blank title falls back to DefaultTitle.
func New(title string) *Playlist {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return &Playlist{title: title, videos: make([]Video, 0)}
}

// Title returns the playlist name, which doubles as its storage key.
func (p *Playlist) Title() string {
	return p.title
}

// Videos returns a copy of the videos in playlist order.
func (p *Playlist) Videos() []Video {
	out := make([]Video, len(p.videos))
	copy(out, p.videos)
	return out
}

// NumItems returns the number of videos in the playlist.
func (p *Playlist) NumItems() int {
	return len(p.videos)
}

// URL returns the watch_videos URL for the current membership and order.
func (p *Playlist) URL() string {
	return ComposeURL(p.videos)
}

// IDs returns the video ids in playlist order.
func (p *Playlist) IDs() []string {
	ids := make([]string, 0, len(p.videos))
	for _, v := range p.videos {
		ids = append(ids, v.Key())
	}
	return ids
}

// Contains reports whether a video with the given id is a member.
func (p *Playlist) Contains(id string) bool {
	for _, v := range p.videos {
		if v.Key() == id {
			return true
		}
	}
	return false
}

// AddVideos appends an unfetched placeholder for every id that is not already
// a member. Duplicates, whether of existing members or within ids, are
// dropped so the first occurrence wins.
func (p *Playlist) AddVideos(ids []string) {
	seen := keySet(p.videos)
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p.videos = append(p.videos, NewVideo(id))
	}
}

// RemoveVideos drops every member whose id is listed. Unknown ids are ignored.
func (p *Playlist) RemoveVideos(ids []string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]Video, 0, len(p.videos))
	for _, v := range p.videos {
		if _, ok := drop[v.Key()]; ok {
			continue
		}
		kept = append(kept, v)
	}
	p.videos = kept
}

// Pending returns the ids of videos that still lack fetched metadata, in
// playlist order.
func (p *Playlist) Pending() []string {
	var ids []string
	for _, v := range p.videos {
		if !v.Fetched {
			ids = append(ids, v.Key())
		}
	}
	return ids
}

// Clone returns a deep copy of the playlist.
func (p *Playlist) Clone() *Playlist {
	return &Playlist{title: p.title, videos: p.Videos()}
}

// ComposeURL joins the ids of videos with commas and prepends
// PlaylistBaseURL. An empty slice yields the bare base URL.
func ComposeURL(videos []Video) string {
	var b strings.Builder
	b.WriteString(PlaylistBaseURL)
	for i, v := range videos {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.Key())
	}
	return b.String()
}

func (p *Playlist) String() string {
	entries := make([]string, 0, len(p.videos))
	for _, v := range p.videos {
		entries = append(entries, "\t"+strings.ReplaceAll(v.String(), "\t", "\t\t"))
	}
	return fmt.Sprintf("%s\n----------\nlength: %d\nvideos: \n%s\n\nplaylist URL: %s",
		p.title, p.NumItems(), strings.Join(entries, "\n\n"), p.URL())
}

func keySet(videos []Video) map[string]struct{} {
	set := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		set[v.Key()] = struct{}{}
	}
	return set
}
