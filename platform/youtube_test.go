package platform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"viralcast/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func youtubeTestAccount() *models.Account {
	return &models.Account{
		ID:             3,
		Platform:       models.PlatformYouTube,
		Username:       "shorts_channel",
		CredentialMode: models.CredentialModeOfficial,
		AccessToken:    "yt-token",
		IsActive:       true,
	}
}

func TestYouTubeDeliverMissingToken(t *testing.T) {
	adapter := NewYouTubeAdapter()
	account := youtubeTestAccount()
	account.AccessToken = ""

	result, err := adapter.Deliver(context.Background(), account, &models.PostPayload{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "authentication error")
}

func TestYouTubeDeliverResumableUpload(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	// Media store serving the video bytes
	mux.HandleFunc("/video.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte("fake video bytes"))
	})
	// Resumable session endpoint
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer yt-token", r.Header.Get("Authorization"))
		w.Header().Set("Location", server.URL+"/upload")
		w.WriteHeader(http.StatusOK)
	})
	// Upload target receiving the streamed bytes
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "fake video bytes", string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"short-abc"}`))
	})

	adapter := NewYouTubeAdapter()
	adapter.uploadURL = server.URL + "/session"

	payload := &models.PostPayload{
		Title:    "My Short",
		VideoURL: server.URL + "/video.mp4",
		Caption:  "My Short",
		Tags:     []string{"shorts"},
	}
	result, err := adapter.Deliver(context.Background(), youtubeTestAccount(), payload)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "short-abc", result.PostID)
	assert.Equal(t, "https://www.youtube.com/shorts/short-abc", result.PostURL)
}

func TestYouTubeDeliverSessionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid Credentials"}}`))
	}))
	defer server.Close()

	adapter := NewYouTubeAdapter()
	adapter.uploadURL = server.URL

	result, err := adapter.Deliver(context.Background(), youtubeTestAccount(), &models.PostPayload{VideoURL: "http://unused"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "401")
}

func TestYouTubeDeliverMediaStoreFailure(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", server.URL+"/upload")
	})
	mux.HandleFunc("/video.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	adapter := NewYouTubeAdapter()
	adapter.uploadURL = server.URL + "/session"

	result, err := adapter.Deliver(context.Background(), youtubeTestAccount(), &models.PostPayload{
		VideoURL: server.URL + "/video.mp4",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "media store returned status 404")
}
