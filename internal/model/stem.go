package model

import (
	"path/filepath"
	"strings"
)

// Stem is one separated output file found under the request folder after a
// run. The external tool owns the layout; Stem only records what was found.
type Stem struct {
	// Path is the absolute or folder-relative path of the stem file.
	Path string

	// Track is the name of the directory holding the stem, which the
	// separation engine names after the source track.
	Track string

	// Name is the stem name derived from the file name, e.g. "vocals".
	Name string
}

// NewStem derives Track and Name from path.
func NewStem(path string) *Stem {
	base := filepath.Base(path)
	return &Stem{
		Path:  path,
		Track: filepath.Base(filepath.Dir(path)),
		Name:  strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Label returns "Track - Name".
func (s *Stem) Label() string {
	return s.Track + " - " + s.Name
}

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL
)

// ParsePlaylistFormat maps a settings value ("m3u", "pls", "wpl") to a
// PlaylistFormat. Unknown values yield PlaylistFormatM3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return PlaylistFormatPLS
	case "wpl":
		return PlaylistFormatWPL
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	default:
		return ".m3u"
	}
}
