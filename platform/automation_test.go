package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"viralcast/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func automationTestAccount() *models.Account {
	return &models.Account{
		ID:             4,
		Platform:       models.PlatformTikTok,
		Username:       "session_account",
		CredentialMode: models.CredentialModeUnofficial,
		IsActive:       true,
		AutomationSession: &models.AutomationSession{
			Cookies:   "sessionid=abc123",
			UserAgent: "Mozilla/5.0",
			Proxy:     "http://proxy:8080",
		},
	}
}

func TestAutomationDeliverMissingSession(t *testing.T) {
	adapter := NewAutomationAdapter(models.PlatformTikTok, "http://driver:8000")

	noSession := automationTestAccount()
	noSession.AutomationSession = nil
	_, err := adapter.Deliver(context.Background(), noSession, &models.PostPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "automation failure")
	assert.Contains(t, err.Error(), "no session cookies")

	emptyCookies := automationTestAccount()
	emptyCookies.AutomationSession.Cookies = ""
	_, err = adapter.Deliver(context.Background(), emptyCookies, &models.PostPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session cookies")
}

func TestAutomationDeliverSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tiktok/post", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "session_account", body["username"])
		assert.Equal(t, "sessionid=abc123", body["cookies"])
		assert.Equal(t, "Mozilla/5.0", body["user_agent"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"post_id":"7312345","post_url":"https://www.tiktok.com/@session_account/video/7312345"}`))
	}))
	defer server.Close()

	adapter := NewAutomationAdapter(models.PlatformTikTok, server.URL)
	payload := &models.PostPayload{
		VideoURL: "https://cdn.example.com/video.mp4",
		Caption:  "hello",
		Tags:     []string{"fyp"},
	}
	result, err := adapter.Deliver(context.Background(), automationTestAccount(), payload)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "7312345", result.PostID)
	assert.Equal(t, "https://www.tiktok.com/@session_account/video/7312345", result.PostURL)
}

func TestAutomationDeliverDriverReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":"session expired, re-login required"}`))
	}))
	defer server.Close()

	adapter := NewAutomationAdapter(models.PlatformInstagram, server.URL)
	result, err := adapter.Deliver(context.Background(), automationTestAccount(), &models.PostPayload{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "session expired")
}

func TestAutomationDeliverDriverUnreachable(t *testing.T) {
	server := httptest.NewServer(nil)
	server.Close() // connection refused

	adapter := NewAutomationAdapter(models.PlatformTikTok, server.URL)
	result, err := adapter.Deliver(context.Background(), automationTestAccount(), &models.PostPayload{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "automation driver request failed")
}
