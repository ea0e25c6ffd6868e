// Package config provides configuration management for stem-splitter.
//
// This package handles:
//   - Default configuration values
//   - Loading and saving settings from JSON or YAML files
//   - Conversion of stored strings into model types
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Runs "demucs", two-stem mode isolates "vocals",
//	// discovers .wav .mp3 .flac .ogg .opus .m4a
//
// # Loading from File
//
// The file format follows the extension: ".yaml" and ".yml" are read as YAML,
// anything else as JSON. A missing file yields the defaults.
//
//	settings, err := config.Load("/path/to/stem-splitter.yaml")
//
// # Saving Settings
//
//	settings.Program = "/opt/demucs/bin/demucs"
//	err := settings.Save("/path/to/stem-splitter.json")
package config
