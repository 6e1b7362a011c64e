// ABOUTME: Tests for YouTube URL parsing and video field derivation
// ABOUTME: Covers the supported URL shapes and placeholder fallbacks
package videos

import "testing"

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url no scheme", "youtube.com/watch?v=abc123", "abc123"},
		{"short url", "https://youtu.be/xyz-789_A", "xyz-789_A"},
		{"embed url", "https://www.youtube.com/embed/QQQ111", "QQQ111"},
		{"v url", "https://youtube.com/v/vvv222", "vvv222"},
		{"empty", "", ""},
		{"hash placeholder", "#", ""},
		{"unrelated url", "https://example.com/video/42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYouTubeID(tt.url); got != tt.want {
				t.Errorf("ExtractYouTubeID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestEmbedURL(t *testing.T) {
	if got := EmbedURL("https://youtu.be/abc"); got != "https://www.youtube.com/embed/abc" {
		t.Errorf("EmbedURL = %q", got)
	}
	if got := EmbedURL("not a url"); got != "#" {
		t.Errorf("EmbedURL fallback = %q, want #", got)
	}
}

func TestThumbnailURL(t *testing.T) {
	if got := ThumbnailURL("https://youtu.be/abc"); got != "https://img.youtube.com/vi/abc/mqdefault.jpg" {
		t.Errorf("ThumbnailURL = %q", got)
	}
	if got := ThumbnailURL(""); got != placeholderThumbnail {
		t.Errorf("ThumbnailURL fallback = %q, want placeholder", got)
	}
}
