// ABOUTME: Video suggestion formatting helpers
// ABOUTME: Extracts YouTube IDs and fills embed, thumbnail, and default fields
package videos

import (
	"log"
	"regexp"
)

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/v/([a-zA-Z0-9_-]+)`),
}

const placeholderThumbnail = "https://via.placeholder.com/320x180/cccccc/666666?text=Video"

// ExtractYouTubeID pulls the video ID out of any common YouTube URL shape.
// Returns "" when the URL is missing or unrecognized.
func ExtractYouTubeID(url string) string {
	if url == "" || url == "#" {
		return ""
	}
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	log.Printf("[Videos] Could not extract YouTube ID from URL: %s", url)
	return ""
}

// EmbedURL returns the embeddable player URL for a video URL, or "#" when
// no ID can be extracted.
func EmbedURL(videoURL string) string {
	if id := ExtractYouTubeID(videoURL); id != "" {
		return "https://www.youtube.com/embed/" + id
	}
	return "#"
}

// ThumbnailURL returns the medium-quality thumbnail for a video URL, or a
// placeholder when no ID can be extracted.
func ThumbnailURL(videoURL string) string {
	if id := ExtractYouTubeID(videoURL); id != "" {
		return "https://img.youtube.com/vi/" + id + "/mqdefault.jpg"
	}
	return placeholderThumbnail
}
