package ioutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/stem-splitter/internal/model"
)

var (
	// ErrInvalidFolder is returned when the folder path does not exist or
	// is not a directory.
	ErrInvalidFolder = errors.New("invalid folder path")

	// ErrNoAudioFiles is reported by callers when discovery found nothing.
	ErrNoAudioFiles = errors.New("no audio files found in the folder")
)

// ResolveFolder trims surrounding whitespace from raw and checks that the
// result names an existing directory.
//
// The trimmed path is returned as typed; it is not cleaned or made absolute,
// so the command shown to the operator echoes their input.
func ResolveFolder(raw string) (string, error) {
	folder := strings.TrimSpace(raw)
	if folder == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidFolder)
	}

	info, err := os.Stat(folder)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidFolder, folder, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidFolder, folder)
	}

	return folder, nil
}

// DiscoverAudioFiles returns the files directly inside folder whose names end
// with one of exts.
//
// Matching is case-sensitive. Hidden files (leading dot) and directories are
// skipped. The result is the concatenation of one group per extension, in the
// order of exts; each group is sorted by name. A file is listed once per
// extension it matches. An empty result is not an error.
func DiscoverAudioFiles(folder string, exts []string) ([]*model.AudioFile, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var files []*model.AudioFile
	for _, ext := range exts {
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
				continue
			}

			path := filepath.Join(folder, name)
			if isDir(entry, path) {
				continue
			}

			files = append(files, &model.AudioFile{Path: path})
		}
	}

	return files, nil
}

// CollectStems walks folder and returns audio files below it (never directly
// in it) that were modified at or after since. These are the outputs of the
// separation engine; their layout is whatever the engine chose.
func CollectStems(folder string, since time.Time, exts []string) ([]*model.Stem, error) {
	var stems []*model.Stem

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Dir(path) == filepath.Clean(folder) {
			return nil
		}
		if !hasExtension(d.Name(), exts) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(since) {
			return nil
		}

		stems = append(stems, model.NewStem(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stems, nil
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func hasExtension(name string, exts []string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// isDir follows symlinks so a link to a directory is skipped too.
func isDir(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
