package audio

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/stem-splitter/internal/model"
	"golang.org/x/sync/errgroup"
)

// Inspector reads ID3 tags from discovered MP3 files.
//
// Only the TPE1 (lead artist) and TIT2 (title) frames are parsed. With a
// limit of 1 files are read one after another in order; a higher limit
// reads that many files at once.
type Inspector struct {
	limit int
}

// NewInspector creates an Inspector running at most limit reads at once.
// A limit below 1 is treated as 1.
func NewInspector(limit int) *Inspector {
	if limit < 1 {
		limit = 1
	}
	return &Inspector{limit: limit}
}

// Inspect fills Artist and Title of every MP3 in files.
//
// A file that cannot be parsed keeps empty tags; it is not an error, since
// the separation engine decides for itself whether it can decode the file.
// The only error returned is ctx's.
func (i *Inspector) Inspect(ctx context.Context, files []*model.AudioFile) error {
	if i.limit == 1 {
		return inspectSequential(ctx, files)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.limit)

	for _, file := range files {
		if !isMP3(file.Path) {
			continue
		}
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file.Artist, file.Title = readTags(file.Path)
			return nil
		})
	}

	return g.Wait()
}

func inspectSequential(ctx context.Context, files []*model.AudioFile) error {
	for _, file := range files {
		if !isMP3(file.Path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		file.Artist, file.Title = readTags(file.Path)
	}
	return nil
}

func readTags(path string) (artist, title string) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Artist", "Title"},
	})
	if err != nil {
		return "", ""
	}
	defer tag.Close()

	return strings.TrimSpace(tag.Artist()), strings.TrimSpace(tag.Title())
}

func isMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}
