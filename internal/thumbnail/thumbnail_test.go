package thumbnail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCandidateURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want []string
	}{
		{
			name: "substitutes all variants",
			url:  "https://i.ytimg.com/vi/abc/hqdefault.jpg",
			want: []string{
				"https://i.ytimg.com/vi/abc/maxresdefault.jpg",
				"https://i.ytimg.com/vi/abc/sddefault.jpg",
				"https://i.ytimg.com/vi/abc/hqdefault.jpg",
			},
		},
		{
			name: "unknown token tried as-is",
			url:  "https://i.ytimg.com/vi/abc/custom.jpg",
			want: []string{"https://i.ytimg.com/vi/abc/custom.jpg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := candidateURLs(tt.url); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("candidateURLs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchFallsBackThroughVariants(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if strings.Contains(r.URL.Path, "hqdefault") {
			w.Write([]byte("jpeg-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	f := NewFetcher()
	if err := f.Fetch(context.Background(), srv.URL+"/vi/abc/maxresdefault.jpg", dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("dest content = %q", data)
	}
	if len(requested) != 3 {
		t.Errorf("requests = %v, want 3 attempts", requested)
	}
}

func TestFetchAllVariantsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "cover.jpg")
	f := NewFetcher()
	if err := f.Fetch(context.Background(), srv.URL+"/vi/abc/maxresdefault.jpg", dest); err == nil {
		t.Fatal("expected error when every variant 404s")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dest file should not exist, stat err = %v", err)
	}
}

func TestFetchEmptyURL(t *testing.T) {
	f := NewFetcher()
	if err := f.Fetch(context.Background(), "", "out.jpg"); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
