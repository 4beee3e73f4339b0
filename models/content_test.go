package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullCaption(t *testing.T) {
	tests := []struct {
		name     string
		payload  PostPayload
		expected string
	}{
		{
			name:     "no tags",
			payload:  PostPayload{Caption: "plain caption"},
			expected: "plain caption",
		},
		{
			name:     "tags appended with hash prefix",
			payload:  PostPayload{Caption: "watch this", Tags: []string{"fyp", "viral"}},
			expected: "watch this\n\n#fyp #viral",
		},
		{
			name:     "already prefixed tags kept as-is",
			payload:  PostPayload{Caption: "watch this", Tags: []string{"#fyp", "viral"}},
			expected: "watch this\n\n#fyp #viral",
		},
		{
			name:     "empty tags skipped",
			payload:  PostPayload{Caption: "watch this", Tags: []string{"", ""}},
			expected: "watch this",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.payload.FullCaption())
		})
	}
}

func TestAtDailyLimit(t *testing.T) {
	unlimited := Account{MaxDailyPosts: 0, DailyPostCount: 100}
	assert.False(t, unlimited.AtDailyLimit())

	underLimit := Account{MaxDailyPosts: 10, DailyPostCount: 9}
	assert.False(t, underLimit.AtDailyLimit())

	atLimit := Account{MaxDailyPosts: 10, DailyPostCount: 10}
	assert.True(t, atLimit.AtDailyLimit())
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("tiktok")
	assert.NoError(t, err)
	assert.Equal(t, PlatformTikTok, p)

	_, err = ParsePlatform("myspace")
	assert.Error(t, err)
}
