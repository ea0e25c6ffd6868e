package separate

import (
	"reflect"
	"testing"

	"github.com/handiism/stem-splitter/internal/config"
)

func TestBuildCommand(t *testing.T) {
	settings := config.DefaultSettings()
	files := []string{"/music/a.mp3", "/music/b.wav"}

	tests := []struct {
		name   string
		token  string
		want   []string
		wantOK bool
	}{
		{
			name:   "four stems",
			token:  "1",
			want:   []string{"demucs", "--out", "/music", "/music/a.mp3", "/music/b.wav"},
			wantOK: true,
		},
		{
			name:   "two stems",
			token:  "2",
			want:   []string{"demucs", "--out", "/music", "--two-stems", "vocals", "/music/a.mp3", "/music/b.wav"},
			wantOK: true,
		},
		{
			name:   "empty falls back",
			token:  "",
			want:   []string{"demucs", "--out", "/music", "/music/a.mp3", "/music/b.wav"},
			wantOK: false,
		},
		{
			name:   "unknown falls back",
			token:  "5",
			want:   []string{"demucs", "--out", "/music", "/music/a.mp3", "/music/b.wav"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := BuildCommand(settings, "/music", files, tt.token)
			if !reflect.DeepEqual(cmd.Args, tt.want) {
				t.Errorf("Args = %q, want %q", cmd.Args, tt.want)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestBuildCommand_DefaultMatchesModeOne(t *testing.T) {
	settings := config.DefaultSettings()
	files := []string{"/x/1.flac"}

	one, _ := BuildCommand(settings, "/x", files, "1")
	for _, token := range []string{"", "0", "3", "one", "11"} {
		other, ok := BuildCommand(settings, "/x", files, token)
		if ok {
			t.Errorf("token %q should not be recognised", token)
		}
		if !reflect.DeepEqual(one.Args, other.Args) {
			t.Errorf("token %q: %q differs from mode 1 %q", token, other.Args, one.Args)
		}
	}
}

func TestBuildCommand_TwoStemsPosition(t *testing.T) {
	settings := config.DefaultSettings()
	files := []string{"/x/a.wav", "/x/b.ogg", "/x/c.m4a"}

	cmd, _ := BuildCommand(settings, "/x", files, "2")

	if cmd.Args[1] != FlagOut || cmd.Args[2] != "/x" {
		t.Fatalf("output-directory tokens misplaced: %q", cmd.Args)
	}
	if cmd.Args[3] != FlagTwoStems || cmd.Args[4] != "vocals" {
		t.Fatalf("two-stems tokens misplaced: %q", cmd.Args)
	}
	if !reflect.DeepEqual(cmd.Args[5:], files) {
		t.Errorf("file tokens = %q, want %q", cmd.Args[5:], files)
	}
}

func TestBuildCommand_Settings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Program = "/opt/demucs/bin/demucs"
	settings.TwoStemsStem = "drums"

	cmd, _ := BuildCommand(settings, "/x", []string{"/x/a.wav"}, "2")
	want := []string{"/opt/demucs/bin/demucs", "--out", "/x", "--two-stems", "drums", "/x/a.wav"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}
