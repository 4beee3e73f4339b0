package models

import "fmt"

// Platform identifies a third-party distribution target
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformDiscord   Platform = "discord"
)

// AllPlatforms lists every platform the engine can deliver to
var AllPlatforms = []Platform{
	PlatformTikTok,
	PlatformInstagram,
	PlatformYouTube,
	PlatformDiscord,
}

// ParsePlatform validates a platform string
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	for _, known := range AllPlatforms {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform: %s", s)
}
