package platform

import (
	"context"
	"fmt"
	"net/http"

	"viralcast/models"
	"viralcast/service"
)

const tiktokBaseURL = "https://open.tiktokapis.com"

// TikTokAdapter delivers videos through TikTok's content posting API.
// TikTok pulls the video from the provided URL, so no upload streaming is
// needed here.
type TikTokAdapter struct {
	client  *http.Client
	baseURL string
}

// NewTikTokAdapter creates a new TikTok delivery adapter
func NewTikTokAdapter() *TikTokAdapter {
	return &TikTokAdapter{
		client:  defaultHTTPClient,
		baseURL: tiktokBaseURL,
	}
}

// Platform returns the platform this adapter delivers to
func (a *TikTokAdapter) Platform() models.Platform {
	return models.PlatformTikTok
}

type tiktokPublishResponse struct {
	Data struct {
		PublishID string `json:"publish_id"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Deliver initiates a pull-from-URL video publish for the account
func (a *TikTokAdapter) Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*service.DeliveryResult, error) {
	if account.AccessToken == "" {
		return nil, fmt.Errorf("authentication error: account %s has no access token", account.Username)
	}

	body := map[string]any{
		"post_info": map[string]any{
			"title":           payload.FullCaption(),
			"privacy_level":   "PUBLIC_TO_EVERYONE",
			"disable_comment": false,
		},
		"source_info": map[string]any{
			"source":    "PULL_FROM_URL",
			"video_url": payload.VideoURL,
		},
	}

	var resp tiktokPublishResponse
	err := postJSON(ctx, a.client, a.baseURL+"/v2/post/publish/video/init/", map[string]string{
		"Authorization": "Bearer " + account.AccessToken,
	}, body, &resp)
	if err != nil {
		return nil, fmt.Errorf("tiktok publish failed: %w", err)
	}

	if resp.Error.Code != "" && resp.Error.Code != "ok" {
		return nil, fmt.Errorf("tiktok publish rejected: %s: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Data.PublishID == "" {
		return nil, fmt.Errorf("tiktok publish returned no publish id")
	}

	// TikTok processes pulled videos asynchronously; the canonical video URL
	// is not known until processing finishes, so report the profile URL
	return &service.DeliveryResult{
		PostID:  resp.Data.PublishID,
		PostURL: fmt.Sprintf("https://www.tiktok.com/@%s", account.Username),
	}, nil
}
