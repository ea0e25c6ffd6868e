// Package audio provides metadata inspection for input files and playlist
// generation for separated stems.
//
// # Tag Inspection
//
// Inspector reads ID3 artist and title frames from MP3 inputs so they can be
// shown by name before separation starts:
//
//	inspector := audio.NewInspector(8)
//	err := inspector.Inspect(ctx, req.Files)
//
// Files that are not MP3 or carry no tags are left untouched.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(folder, stems)
//	os.WriteFile("stems.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
package audio
