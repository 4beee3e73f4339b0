package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"viralcast/models"
	"viralcast/service"
)

const youtubeUploadURL = "https://www.googleapis.com/upload/youtube/v3/videos?uploadType=resumable&part=snippet,status"

// YouTubeAdapter uploads shorts through the YouTube Data API. Unlike TikTok
// and Instagram, YouTube cannot pull from a URL, so the adapter streams the
// video bytes from the media store through a resumable upload session.
type YouTubeAdapter struct {
	client    *http.Client
	uploadURL string
}

// NewYouTubeAdapter creates a new YouTube delivery adapter
func NewYouTubeAdapter() *YouTubeAdapter {
	return &YouTubeAdapter{
		client:    defaultHTTPClient,
		uploadURL: youtubeUploadURL,
	}
}

// Platform returns the platform this adapter delivers to
func (a *YouTubeAdapter) Platform() models.Platform {
	return models.PlatformYouTube
}

type youtubeVideoResponse struct {
	ID string `json:"id"`
}

// Deliver opens a resumable upload session and streams the video into it
func (a *YouTubeAdapter) Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*service.DeliveryResult, error) {
	if account.AccessToken == "" {
		return nil, fmt.Errorf("authentication error: account %s has no access token", account.Username)
	}

	sessionURL, err := a.openUploadSession(ctx, account, payload)
	if err != nil {
		return nil, err
	}

	videoID, err := a.streamVideo(ctx, sessionURL, payload.VideoURL)
	if err != nil {
		return nil, err
	}

	return &service.DeliveryResult{
		PostID:  videoID,
		PostURL: fmt.Sprintf("https://www.youtube.com/shorts/%s", videoID),
	}, nil
}

// openUploadSession creates the resumable session carrying the metadata
func (a *YouTubeAdapter) openUploadSession(ctx context.Context, account *models.Account, payload *models.PostPayload) (string, error) {
	caption := payload.FullCaption()
	title := caption
	if idx := strings.IndexByte(title, '\n'); idx > 0 {
		title = title[:idx]
	}
	if len(title) > 100 {
		title = title[:100]
	}

	metadata := map[string]any{
		"snippet": map[string]any{
			"title":       title,
			"description": caption,
			"tags":        payload.Tags,
		},
		"status": map[string]any{
			"privacyStatus":           "public",
			"selfDeclaredMadeForKids": false,
		},
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode upload metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.uploadURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("failed to create session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Upload-Content-Type", "video/*")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("youtube session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return "", fmt.Errorf("youtube session rejected, status %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	sessionURL := resp.Header.Get("Location")
	if sessionURL == "" {
		return "", fmt.Errorf("youtube session response missing upload location")
	}
	return sessionURL, nil
}

// streamVideo pipes the video bytes from the media store into the session
func (a *YouTubeAdapter) streamVideo(ctx context.Context, sessionURL, videoURL string) (string, error) {
	source, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create video fetch request: %w", err)
	}

	videoResp, err := a.client.Do(source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video from media store: %w", err)
	}
	defer videoResp.Body.Close()

	if videoResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media store returned status %d for video", videoResp.StatusCode)
	}

	upload, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, videoResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	upload.Header.Set("Content-Type", "video/*")
	if videoResp.ContentLength > 0 {
		upload.ContentLength = videoResp.ContentLength
	}

	resp, err := a.client.Do(upload)
	if err != nil {
		return "", fmt.Errorf("youtube upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("youtube upload rejected, status %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	var video youtubeVideoResponse
	if err := json.Unmarshal(body, &video); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if video.ID == "" {
		return "", fmt.Errorf("youtube upload returned no video id")
	}
	return video.ID, nil
}
