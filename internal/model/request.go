package model

import (
	"path/filepath"
	"strings"
	"time"
)

// AudioFile is an input file found directly inside the requested folder.
type AudioFile struct {
	// Path is the folder joined with the file name.
	Path string

	// Artist and Title come from ID3 tags when the file has them.
	// Both are empty for formats without ID3 support.
	Artist string
	Title  string
}

// Name returns the file name without its directory.
func (f *AudioFile) Name() string {
	return filepath.Base(f.Path)
}

// Label returns "Artist - Title" when tags are known, otherwise the file name.
func (f *AudioFile) Label() string {
	switch {
	case f.Artist != "" && f.Title != "":
		return f.Artist + " - " + f.Title
	case f.Title != "":
		return f.Title
	default:
		return f.Name()
	}
}

// Request holds everything needed to run one separation.
type Request struct {
	// Folder is the validated input directory. Separated stems are written
	// back underneath it.
	Folder string

	// ModeToken is the raw menu choice as typed by the operator.
	ModeToken string

	// Files are the discovered inputs, in discovery order.
	Files []*AudioFile
}

// Paths returns the paths of all files in discovery order.
func (r *Request) Paths() []string {
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.Path
	}
	return paths
}

// Command is the argument vector for the external separation tool.
// Args[0] is the program name.
type Command struct {
	Args []string
}

// Program returns the executable name.
func (c Command) Program() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String renders the command the way it is shown to the operator.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Result describes a finished run of the external tool.
type Result struct {
	// ExitCode is the child's exit status, or -1 if it never started or was
	// killed by a signal.
	ExitCode int

	// Duration is the wall time between start and exit.
	Duration time.Duration

	// Tail holds the last lines the child printed when line capture was on.
	Tail []string
}

// Success reports whether the child exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}
