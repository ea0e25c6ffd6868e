package model

import (
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		token  string
		want   Mode
		wantOK bool
	}{
		{"1", ModeFourStems, true},
		{"2", ModeTwoStems, true},
		{" 2\n", ModeTwoStems, true},
		{"", ModeFourStems, false},
		{"3", ModeFourStems, false},
		{"two", ModeFourStems, false},
		{"12", ModeFourStems, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseMode(tt.token)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMode_Token(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(m.Token())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, true", m.Token(), got, ok, m)
		}
	}
}

func TestAudioFile_Label(t *testing.T) {
	tests := []struct {
		name string
		file AudioFile
		want string
	}{
		{"tagged", AudioFile{Path: "/music/a.mp3", Artist: "Artist", Title: "Song"}, "Artist - Song"},
		{"title only", AudioFile{Path: "/music/a.mp3", Title: "Song"}, "Song"},
		{"untagged", AudioFile{Path: "/music/b.wav"}, "b.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequest_Paths(t *testing.T) {
	req := &Request{
		Folder: "/music",
		Files: []*AudioFile{
			{Path: "/music/a.mp3"},
			{Path: "/music/b.wav"},
		},
	}

	got := req.Paths()
	if len(got) != 2 || got[0] != "/music/a.mp3" || got[1] != "/music/b.wav" {
		t.Errorf("Paths() = %v", got)
	}
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Args: []string{"demucs", "--out", "/music", "/music/a.mp3"}}
	if got, want := cmd.String(), "demucs --out /music /music/a.mp3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := cmd.Program(); got != "demucs" {
		t.Errorf("Program() = %q, want demucs", got)
	}
	if got := (Command{}).Program(); got != "" {
		t.Errorf("empty Program() = %q", got)
	}
}

func TestNewStem(t *testing.T) {
	path := filepath.Join("music", "htdemucs", "song", "vocals.wav")
	stem := NewStem(path)

	if stem.Track != "song" {
		t.Errorf("Track = %q, want song", stem.Track)
	}
	if stem.Name != "vocals" {
		t.Errorf("Name = %q, want vocals", stem.Name)
	}
	if stem.Label() != "song - vocals" {
		t.Errorf("Label() = %q", stem.Label())
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"m3u", ".m3u"},
		{"PLS", ".pls"},
		{"wpl", ".wpl"},
		{"zpl", ".m3u"},
		{"", ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParsePlaylistFormat(tt.in).Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}
