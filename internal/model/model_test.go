package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	for _, s := range []string{"male", "female", "neutral"} {
		g, ok := ParseGender(s)
		assert.True(t, ok, s)
		assert.Equal(t, Gender(s), g)
	}

	for _, s := range []string{"", "Female", "other", " male"} {
		_, ok := ParseGender(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestDefaults(t *testing.T) {
	p := DefaultUserProfile()
	assert.Equal(t, UserProfile{Gender: GenderNeutral, Name: "Friend", Mood: "neutral", WisdomLevel: 1, XP: 0}, p)

	cfg := DefaultDisplayConfig()
	assert.False(t, cfg.IsOpenDefault)
	assert.Equal(t, "Chanakya", cfg.AssistantName)
	assert.Equal(t, GenderNeutral, cfg.AssistantGender)
	assert.Equal(t, "#6366f1", cfg.Theme.Primary)

	assert.Len(t, DefaultQuickReplies(), 3)
}

// The persisted layout must stay readable by the browser widget, which
// uses camelCase keys.
func TestDisplayConfig_JSONLayout(t *testing.T) {
	raw, err := json.Marshal(DefaultDisplayConfig())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "isOpen")
	assert.Contains(t, generic, "assistantName")
	assert.Contains(t, generic, "assistantGender")
	assert.Contains(t, generic, "theme")
}
