package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"viralcast/models"
	"viralcast/service"
)

const instagramBaseURL = "https://graph.facebook.com/v19.0"

// InstagramAdapter publishes reels through the Instagram Graph API. Requires
// a business account id on top of the access token: the Graph API only
// exposes publishing to business/creator accounts.
type InstagramAdapter struct {
	client  *http.Client
	baseURL string
}

// NewInstagramAdapter creates a new Instagram delivery adapter
func NewInstagramAdapter() *InstagramAdapter {
	return &InstagramAdapter{
		client:  defaultHTTPClient,
		baseURL: instagramBaseURL,
	}
}

// Platform returns the platform this adapter delivers to
func (a *InstagramAdapter) Platform() models.Platform {
	return models.PlatformInstagram
}

type instagramIDResponse struct {
	ID string `json:"id"`
}

type instagramPermalinkResponse struct {
	Permalink string `json:"permalink"`
}

// Deliver runs the two-step container create + publish flow for a reel
func (a *InstagramAdapter) Deliver(ctx context.Context, account *models.Account, payload *models.PostPayload) (*service.DeliveryResult, error) {
	if account.AccessToken == "" {
		return nil, fmt.Errorf("authentication error: account %s has no access token", account.Username)
	}
	if account.BusinessAccountID == "" {
		return nil, fmt.Errorf("authentication error: account %s has no business account id", account.Username)
	}

	// Step 1: create the media container
	container := map[string]any{
		"media_type":   "REELS",
		"video_url":    payload.VideoURL,
		"caption":      payload.FullCaption(),
		"access_token": account.AccessToken,
	}
	if payload.ThumbnailURL != "" {
		container["cover_url"] = payload.ThumbnailURL
	}

	var created instagramIDResponse
	createURL := fmt.Sprintf("%s/%s/media", a.baseURL, account.BusinessAccountID)
	if err := postJSON(ctx, a.client, createURL, nil, container, &created); err != nil {
		return nil, fmt.Errorf("instagram container creation failed: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("instagram container creation returned no id")
	}

	// Step 2: publish the container
	var published instagramIDResponse
	publishURL := fmt.Sprintf("%s/%s/media_publish", a.baseURL, account.BusinessAccountID)
	publish := map[string]any{
		"creation_id":  created.ID,
		"access_token": account.AccessToken,
	}
	if err := postJSON(ctx, a.client, publishURL, nil, publish, &published); err != nil {
		return nil, fmt.Errorf("instagram publish failed: %w", err)
	}
	if published.ID == "" {
		return nil, fmt.Errorf("instagram publish returned no media id")
	}

	// Fetch the permalink; fall back to the profile URL if the lookup fails
	postURL := fmt.Sprintf("https://www.instagram.com/%s/", account.Username)
	lookupURL := fmt.Sprintf("%s/%s?fields=permalink&access_token=%s", a.baseURL, published.ID, url.QueryEscape(account.AccessToken))
	var permalink instagramPermalinkResponse
	if err := getJSON(ctx, a.client, lookupURL, nil, &permalink); err == nil && permalink.Permalink != "" {
		postURL = permalink.Permalink
	}

	return &service.DeliveryResult{
		PostID:  published.ID,
		PostURL: postURL,
	}, nil
}
