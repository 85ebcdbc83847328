package util

import "testing"

func TestValidateYouTubeURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "watch URL", in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{name: "short URL", in: "https://youtu.be/dQw4w9WgXcQ"},
		{name: "mobile host", in: "https://m.youtube.com/watch?v=abc"},
		{name: "music host", in: "https://music.youtube.com/watch?v=abc"},
		{name: "playlist URL", in: "https://www.youtube.com/playlist?list=PL123"},
		{name: "scheme assumed", in: "youtube.com/watch?v=abc"},
		{name: "other site rejected", in: "https://vimeo.com/12345", wantErr: true},
		{name: "garbage rejected", in: "://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateYouTubeURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateYouTubeURL(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestIsPlaylistURL(t *testing.T) {
	if !IsPlaylistURL("https://www.youtube.com/watch?v=abc&list=PL123") {
		t.Error("list param should mark a playlist")
	}
	if IsPlaylistURL("https://youtu.be/abc") {
		t.Error("plain video URL is not a playlist")
	}
}
