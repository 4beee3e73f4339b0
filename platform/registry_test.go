package platform

import (
	"testing"

	"viralcast/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	registry.Register(NewTikTokAdapter())
	registry.Register(NewInstagramAdapter())

	adapter, ok := registry.Get(models.PlatformTikTok)
	require.True(t, ok)
	assert.Equal(t, models.PlatformTikTok, adapter.Platform())

	_, ok = registry.Get(models.PlatformYouTube)
	assert.False(t, ok)
}

func TestRegistryReplaceAdapter(t *testing.T) {
	registry := NewRegistry()

	registry.Register(NewTikTokAdapter())
	// Flipping a platform to its automation variant is a re-registration
	registry.Register(NewAutomationAdapter(models.PlatformTikTok, "http://driver:8000"))

	adapter, ok := registry.Get(models.PlatformTikTok)
	require.True(t, ok)
	_, isAutomation := adapter.(*AutomationAdapter)
	assert.True(t, isAutomation)
	assert.Len(t, registry.Platforms(), 1)
}

func TestRegistryPlatforms(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewTikTokAdapter())
	registry.Register(NewInstagramAdapter())
	registry.Register(NewYouTubeAdapter())

	platforms := registry.Platforms()
	assert.Len(t, platforms, 3)
	assert.Contains(t, platforms, models.PlatformTikTok)
	assert.Contains(t, platforms, models.PlatformInstagram)
	assert.Contains(t, platforms, models.PlatformYouTube)
}
