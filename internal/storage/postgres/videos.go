// ABOUTME: Video suggestion lookup with multi-column topic matching
// ABOUTME: ILIKE filter across topic, title, subtopic, and description
package postgres

import (
	"context"
	"database/sql"
	"log"

	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/videos"
)

// SearchVideos returns up to limit video suggestions whose topic, title,
// subtopic, or description matches the given topic. Failures degrade to an
// empty list.
func (s *Store) SearchVideos(ctx context.Context, topic string, limit int) []models.Video {
	if topic == "" || limit <= 0 {
		return nil
	}

	pattern := "%" + topic + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, topic, subtopic, description, difficulty, duration, video_url
		FROM video_suggestions
		WHERE topic ILIKE $1 OR title ILIKE $1 OR subtopic ILIKE $1 OR description ILIKE $1
		LIMIT $2`,
		pattern, limit)
	if err != nil {
		log.Printf("[Videos] video_suggestions fetch error: %v", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var out []models.Video
	for rows.Next() {
		var v models.Video
		var title, vtopic, subtopic, description, difficulty, duration, videoURL sql.NullString
		if err := rows.Scan(&v.ID, &title, &vtopic, &subtopic, &description, &difficulty, &duration, &videoURL); err != nil {
			log.Printf("[Videos] video_suggestions scan error: %v", err)
			continue
		}
		out = append(out, decorateVideo(v.ID, title.String, vtopic.String, subtopic.String,
			description.String, difficulty.String, duration.String, videoURL.String))
	}
	if err := rows.Err(); err != nil {
		log.Printf("[Videos] video_suggestions iteration error: %v", err)
	}
	return out
}

// decorateVideo fills display defaults and derives embed/thumbnail URLs.
func decorateVideo(id int64, title, topic, subtopic, description, difficulty, duration, videoURL string) models.Video {
	if title == "" {
		title = "DSA Tutorial"
	}
	if topic == "" {
		topic = "DSA"
	}
	if description == "" {
		description = subtopic
	}
	if description == "" {
		description = "Learn this DSA concept"
	}
	if difficulty == "" {
		difficulty = "Beginner"
	}
	if duration == "" {
		duration = "10:00"
	}
	if videoURL == "" {
		videoURL = "#"
	}
	return models.Video{
		ID:           id,
		Title:        title,
		Topic:        topic,
		Subtopic:     subtopic,
		Description:  description,
		Difficulty:   difficulty,
		Duration:     duration,
		EmbedURL:     videos.EmbedURL(videoURL),
		VideoURL:     videoURL,
		ThumbnailURL: videos.ThumbnailURL(videoURL),
	}
}
