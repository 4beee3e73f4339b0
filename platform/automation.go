package platform

import (
	"context"
	"fmt"
	"net/http"

	"viralcast/models"
	"viralcast/service"
)

// AutomationAdapter delivers through the browser automation driver instead
// of an official API. One instance per platform; registering it for a
// platform replaces the official adapter for that platform.
type AutomationAdapter struct {
	platform  models.Platform
	driverURL string
	client    *http.Client
}

// NewAutomationAdapter creates an automation-backed adapter for a platform
func NewAutomationAdapter(platform models.Platform, driverURL string) *AutomationAdapter {
	return &AutomationAdapter{
		platform:  platform,
		driverURL: driverURL,
		client:    defaultHTTPClient,
	}
}

// Platform returns the platform this adapter delivers to
func (a *AutomationAdapter) Platform() models.Platform {
	return a.platform
}

type automationPostResponse struct {
	Success bool   `json:"success"`
	PostID  string `json:"post_id"`
	PostURL string `json:"post_url"`
	Error   string `json:"error"`
}

// Deliver hands the post to the automation driver using the account's
// captured browser session
func (a *AutomationAdapter) Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*service.DeliveryResult, error) {
	session := account.AutomationSession
	if session == nil || session.Cookies == "" {
		return nil, fmt.Errorf("automation failure: account %s has no session cookies", account.Username)
	}

	body := map[string]any{
		"username":   account.Username,
		"cookies":    session.Cookies,
		"user_agent": session.UserAgent,
		"proxy":      session.Proxy,
		"video_url":  payload.VideoURL,
		"caption":    payload.FullCaption(),
	}

	var resp automationPostResponse
	endpoint := fmt.Sprintf("%s/api/v1/%s/post", a.driverURL, a.platform)
	if err := postJSON(ctx, a.client, endpoint, nil, body, &resp); err != nil {
		return nil, fmt.Errorf("automation driver request failed: %w", err)
	}

	if !resp.Success {
		if resp.Error == "" {
			resp.Error = "driver reported failure without detail"
		}
		return nil, fmt.Errorf("automation failure: %s", resp.Error)
	}

	return &service.DeliveryResult{
		PostID:  resp.PostID,
		PostURL: resp.PostURL,
	}, nil
}
