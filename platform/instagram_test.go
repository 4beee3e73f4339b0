package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"viralcast/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instagramTestAccount() *models.Account {
	return &models.Account{
		ID:                2,
		Platform:          models.PlatformInstagram,
		Username:          "reels_account",
		CredentialMode:    models.CredentialModeOfficial,
		AccessToken:       "ig-token",
		BusinessAccountID: "17841400000000000",
		IsActive:          true,
	}
}

func TestInstagramDeliverMissingCredentials(t *testing.T) {
	adapter := NewInstagramAdapter()

	noToken := instagramTestAccount()
	noToken.AccessToken = ""
	_, err := adapter.Deliver(context.Background(), noToken, &models.PostPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")

	noBusinessID := instagramTestAccount()
	noBusinessID.BusinessAccountID = ""
	_, err = adapter.Deliver(context.Background(), noBusinessID, &models.PostPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no business account id")
}

func TestInstagramDeliverTwoStepPublish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/17841400000000000/media":
			w.Write([]byte(`{"id":"container-1"}`))
		case "/17841400000000000/media_publish":
			w.Write([]byte(`{"id":"media-9"}`))
		case "/media-9":
			assert.Equal(t, "permalink", r.URL.Query().Get("fields"))
			w.Write([]byte(`{"permalink":"https://www.instagram.com/reel/XYZ/"}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	adapter := NewInstagramAdapter()
	adapter.baseURL = server.URL

	payload := &models.PostPayload{
		VideoURL: "https://cdn.example.com/video.mp4",
		Caption:  "new reel",
	}
	result, err := adapter.Deliver(context.Background(), instagramTestAccount(), payload)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "media-9", result.PostID)
	assert.Equal(t, "https://www.instagram.com/reel/XYZ/", result.PostURL)
}

func TestInstagramDeliverPermalinkFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/17841400000000000/media":
			w.Write([]byte(`{"id":"container-1"}`))
		case "/17841400000000000/media_publish":
			w.Write([]byte(`{"id":"media-9"}`))
		default:
			// Permalink lookup fails; delivery still succeeds
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	adapter := NewInstagramAdapter()
	adapter.baseURL = server.URL

	result, err := adapter.Deliver(context.Background(), instagramTestAccount(), &models.PostPayload{})

	require.NoError(t, err)
	assert.Equal(t, "https://www.instagram.com/reels_account/", result.PostURL)
}

func TestInstagramDeliverContainerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	adapter := NewInstagramAdapter()
	adapter.baseURL = server.URL

	result, err := adapter.Deliver(context.Background(), instagramTestAccount(), &models.PostPayload{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "instagram container creation failed")
}
