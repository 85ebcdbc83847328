package tagger

import (
	"reflect"
	"testing"
)

func TestBuildTagArgs(t *testing.T) {
	meta := Metadata{Title: "Song", Artist: "Band"}

	tests := []struct {
		name  string
		in    string
		cover string
		want  []string
	}{
		{
			name: "mp4 without cover",
			in:   "a.mp4",
			want: []string{"-y", "-i", "a.mp4", "-c", "copy", "-metadata", "title=Song", "-metadata", "artist=Band", "out.mp4"},
		},
		{
			name:  "mp4 with cover uses attached_pic",
			in:    "a.mp4",
			cover: "c.jpg",
			want: []string{
				"-y", "-i", "a.mp4", "-i", "c.jpg",
				"-map", "0", "-map", "1",
				"-c", "copy",
				"-disposition:v:1", "attached_pic",
				"-metadata", "title=Song", "-metadata", "artist=Band",
				"out.mp4",
			},
		},
		{
			name:  "mkv with cover uses attachment",
			in:    "a.mkv",
			cover: "c.jpg",
			want: []string{
				"-y", "-i", "a.mkv",
				"-c", "copy",
				"-attach", "c.jpg",
				"-metadata:s:t:0", "mimetype=image/jpeg",
				"-metadata", "title=Song", "-metadata", "artist=Band",
				"out.mp4",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTagArgs(tt.in, "out.mp4", meta, tt.cover)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args = %v\nwant   %v", got, tt.want)
			}
		})
	}
}

func TestBuildTagArgsSkipsEmptyFields(t *testing.T) {
	got := BuildTagArgs("a.mkv", "out.mkv", Metadata{Title: "Only Title"}, "")
	want := []string{"-y", "-i", "a.mkv", "-c", "copy", "-metadata", "title=Only Title", "out.mkv"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestTempSibling(t *testing.T) {
	if got := tempSibling("/out/My Video.mp4"); got != "/out/My Video.tagged.mp4" {
		t.Errorf("tempSibling = %q", got)
	}
}
