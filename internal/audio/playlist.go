package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/stem-splitter/internal/model"
)

// PlaylistCreator generates playlist files listing separated stems.
//
// Entries are written relative to the folder the playlist is saved in,
// which is the request folder.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist("/music", stems)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,song - vocals
//	// htdemucs/song/vocals.wav
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects M3U output.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for stems found under folder.
func (p *PlaylistCreator) CreatePlaylist(folder string, stems []*model.Stem) string {
	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(folder, stems)
	case model.PlaylistFormatWPL:
		return p.createWPL(folder, stems)
	default:
		return p.createM3U(folder, stems)
	}
}

// createM3U generates an M3U playlist. Stem durations are unknown, so
// extended entries use -1.
func (p *PlaylistCreator) createM3U(folder string, stems []*model.Stem) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, stem := range stems {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", stem.Label()))
		}
		sb.WriteString(relPath(folder, stem.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=htdemucs/song/vocals.wav
//	Title1=song - vocals
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(folder string, stems []*model.Stem) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, stem := range stems {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, relPath(folder, stem.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, stem.Label()))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(stems)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(folder string, stems []*model.Stem) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(filepath.Base(folder)+" stems")))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, stem := range stems {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(relPath(folder, stem.Path))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

func relPath(folder, path string) string {
	rel, err := filepath.Rel(folder, path)
	if err != nil {
		return path
	}
	return rel
}

// escapeXML escapes & < > " and ' for attribute and text content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
