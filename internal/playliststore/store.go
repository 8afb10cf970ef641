package playliststore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tubelist/internal/playlist"
	"tubelist/internal/services"
)

const documentExt = ".json"

// Store reads and writes playlist documents in a single directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory itself is not created.
func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "playliststore", "open", "save directory required", nil)
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

// Dir returns the directory that holds the playlist documents.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the document path for title.
func (s *Store) Path(title string) string {
	return filepath.Join(s.dir, title+documentExt)
}

// ValidateTitle rejects titles that cannot be used as a document file name.
func ValidateTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return services.Wrap(services.ErrValidation, "playliststore", "title", "playlist title must not be empty", nil)
	case title == "." || title == "..":
		return services.Wrap(services.ErrValidation, "playliststore", "title", fmt.Sprintf("invalid playlist title %q", title), nil)
	case strings.ContainsAny(title, `/\`) || strings.ContainsRune(title, 0):
		return services.Wrap(services.ErrValidation, "playliststore", "title", fmt.Sprintf("playlist title %q must not contain path separators", title), nil)
	}
	return nil
}

// Load reads the playlist stored under title. When no document exists an
// empty one is created and found is false; the caller starts a new playlist.
func (s *Store) Load(title string) (p *playlist.Playlist, found bool, err error) {
	if err := ValidateTitle(title); err != nil {
		return nil, false, err
	}
	path := s.Path(title)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, services.Wrap(services.ErrIO, "playliststore", "load", path, err)
		}
		if err := createEmpty(path); err != nil {
			return nil, false, services.Wrap(services.ErrIO, "playliststore", "create", path, err)
		}
		return nil, false, nil
	}

	var loaded playlist.Playlist
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, false, services.Wrap(services.ErrSerialization, "playliststore", "decode", path, err)
	}
	return &loaded, true, nil
}

// Save writes the full playlist document, replacing any existing content.
func (s *Store) Save(p *playlist.Playlist) error {
	if p == nil {
		return errors.New("playliststore: save nil playlist")
	}
	if err := ValidateTitle(p.Title()); err != nil {
		return err
	}
	path := s.Path(p.Title())

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrSerialization, "playliststore", "encode", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "playliststore", "save", path, err)
	}
	return nil
}

// Exists reports whether a non-empty document is stored under title.
func (s *Store) Exists(title string) (bool, error) {
	if err := ValidateTitle(title); err != nil {
		return false, err
	}
	info, err := os.Stat(s.Path(title))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, services.Wrap(services.ErrIO, "playliststore", "stat", s.Path(title), err)
	}
	return info.Size() > 0, nil
}

func createEmpty(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return err
	}
	return file.Close()
}
