package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/stem-splitter/internal/model"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Separation engine
	Program      string `json:"program" yaml:"program"`
	TwoStemsStem string `json:"two_stems_stem" yaml:"two_stems_stem"`

	// Discovery
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Inspection and reporting
	InspectTags      bool `json:"inspect_tags" yaml:"inspect_tags"`
	MaxConcurrentTag int  `json:"max_concurrent_tag_reads" yaml:"max_concurrent_tag_reads"`
	ListStems        bool `json:"list_stems" yaml:"list_stems"`
	OutputTailLines  int  `json:"output_tail_lines" yaml:"output_tail_lines"`

	// Playlist settings
	CreatePlaylist   bool   `json:"create_playlist" yaml:"create_playlist"`
	PlaylistFormat   string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl
	PlaylistFileName string `json:"playlist_file_name" yaml:"playlist_file_name"`
	M3UExtended      bool   `json:"m3u_extended" yaml:"m3u_extended"`
}

// DefaultExtensions are the audio file patterns discovered in a folder.
// Matching is case-sensitive.
var DefaultExtensions = []string{".wav", ".mp3", ".flac", ".ogg", ".opus", ".m4a"}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Program:      "demucs",
		TwoStemsStem: "vocals",

		Extensions: append([]string(nil), DefaultExtensions...),

		InspectTags:      true,
		MaxConcurrentTag: 1,
		ListStems:        true,
		OutputTailLines:  20,

		CreatePlaylist:   false,
		PlaylistFormat:   "m3u",
		PlaylistFileName: "stems",
		M3UExtended:      true,
	}
}

// Load reads settings from a JSON or YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings can produce a runnable command.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Program) == "" {
		return fmt.Errorf("program must not be empty")
	}
	if strings.TrimSpace(s.TwoStemsStem) == "" {
		return fmt.Errorf("two_stems_stem must not be empty")
	}
	if len(s.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q", ext)
		}
	}
	if s.MaxConcurrentTag < 1 {
		s.MaxConcurrentTag = 1
	}
	return nil
}

// ToPlaylistFormat converts the stored playlist format.
func (s *Settings) ToPlaylistFormat() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}

// PlaylistPath returns where the stem playlist is written for folder.
func (s *Settings) PlaylistPath(folder string) string {
	name := s.PlaylistFileName
	if name == "" {
		name = "stems"
	}
	return filepath.Join(folder, name+s.ToPlaylistFormat().Extension())
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
