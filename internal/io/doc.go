// Package ioutils provides the file system side of stem-splitter.
//
// This package contains functions for:
//   - Validating the operator's folder path
//   - Discovering audio files directly inside that folder
//   - Collecting stem files written by the separation engine
//   - Writing small text files such as playlists
//
// # Folder Resolution
//
//	folder, err := ioutils.ResolveFolder("  /music \n")
//	if errors.Is(err, ioutils.ErrInvalidFolder) {
//	    // path missing or not a directory
//	}
//
// # Discovery
//
// DiscoverAudioFiles does not recurse. Results are grouped by extension in the
// order the extensions are given, and sorted by name within each group:
//
//	files, err := ioutils.DiscoverAudioFiles(folder, config.DefaultExtensions)
//	if len(files) == 0 {
//	    // caller reports ErrNoAudioFiles
//	}
//
// # Stem Collection
//
//	stems, err := ioutils.CollectStems(folder, startedAt, config.DefaultExtensions)
package ioutils
