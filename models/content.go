package models

import (
	"strings"
	"time"
)

// ContentStatus tracks the delivery state of a content item
type ContentStatus string

const (
	ContentStatusPending   ContentStatus = "pending"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusFailed    ContentStatus = "failed"
)

// Content is a generated video plus its caption, produced by the generation
// pipeline. The posting engine only ever mutates its status.
type Content struct {
	ID              string        `db:"id"`
	Title           string        `db:"title"`
	VideoURL        string        `db:"video_url"`
	ThumbnailURL    string        `db:"thumbnail_url"`
	Caption         string        `db:"caption"`
	Tags            []string      `db:"tags"`
	TargetPlatforms []Platform    `db:"target_platforms"`
	Status          ContentStatus `db:"status"`
	ScheduledAt     *time.Time    `db:"scheduled_at"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// PostPayload is the normalized data handed to a delivery adapter
type PostPayload struct {
	Title        string
	VideoURL     string
	ThumbnailURL string
	Caption      string
	Tags         []string
	ScheduledAt  *time.Time
}

// FullCaption returns the caption with hashtags appended
func (p *PostPayload) FullCaption() string {
	if len(p.Tags) == 0 {
		return p.Caption
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		tags = append(tags, t)
	}
	if len(tags) == 0 {
		return p.Caption
	}
	return p.Caption + "\n\n" + strings.Join(tags, " ")
}

// PayloadForContent builds the normalized post payload for a content item
func PayloadForContent(c *Content) *PostPayload {
	return &PostPayload{
		Title:        c.Title,
		VideoURL:     c.VideoURL,
		ThumbnailURL: c.ThumbnailURL,
		Caption:      c.Caption,
		Tags:         c.Tags,
		ScheduledAt:  c.ScheduledAt,
	}
}
