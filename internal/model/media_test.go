package model

import "testing"

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		in      string
		want    MediaType
		wantErr bool
	}{
		{in: "mp3", want: MediaMP3},
		{in: "MP4", want: MediaMP4},
		{in: "  wav ", want: MediaWAV},
		{in: "mkv", want: MediaMKV},
		{in: "ogg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMediaType(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMediaType(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMediaType(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMediaType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMediaTypeTraits(t *testing.T) {
	if !MediaMP3.AudioOnly() || !MediaWAV.AudioOnly() {
		t.Error("mp3 and wav are audio only")
	}
	if MediaMP4.AudioOnly() || MediaMKV.AudioOnly() {
		t.Error("mp4 and mkv carry video")
	}
	if !MediaMP4.NeedsQuality() || !MediaMKV.NeedsQuality() {
		t.Error("video formats take a quality choice")
	}
	if MediaMP3.NeedsQuality() || MediaWAV.NeedsQuality() {
		t.Error("audio formats take no quality choice")
	}
	if MediaMKV.Ext() != "mkv" {
		t.Errorf("Ext = %q", MediaMKV.Ext())
	}
}

func TestRunReportMath(t *testing.T) {
	r := RunReport{TotalItems: 3, SuccessCount: 2}
	if r.FailureCount() != 1 {
		t.Errorf("FailureCount = %d", r.FailureCount())
	}
	if got := r.SuccessRate(); got < 66.66 || got > 66.68 {
		t.Errorf("SuccessRate = %f", got)
	}
	empty := RunReport{}
	if empty.SuccessRate() != 0 {
		t.Errorf("empty SuccessRate = %f", empty.SuccessRate())
	}
}
