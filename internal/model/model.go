package model

import (
	"time"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Gender is used both for the user and for the assistant persona.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// ParseGender reports whether s names one of the three supported genders.
func ParseGender(s string) (Gender, bool) {
	switch g := Gender(s); g {
	case GenderMale, GenderFemale, GenderNeutral:
		return g, true
	default:
		return "", false
	}
}

// Valid reports whether g is one of the three supported genders.
func (g Gender) Valid() bool {
	_, ok := ParseGender(string(g))
	return ok
}

// Message is a single entry of the conversation history. Messages are
// never edited once appended.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"isError,omitempty"`
	// ReplyTo holds the ID of the user message an assistant reply answers.
	ReplyTo string `json:"replyTo,omitempty"`
}

// UserProfile is what the widget knows about the person chatting.
type UserProfile struct {
	Gender      Gender `json:"gender"`
	Name        string `json:"name"`
	Mood        string `json:"mood"`
	WisdomLevel int    `json:"wisdomLevel"`
	XP          int    `json:"xp"`
}

// DefaultUserProfile returns the profile used when nothing is stored.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		Gender:      GenderNeutral,
		Name:        "Friend",
		Mood:        "neutral",
		WisdomLevel: 1,
		XP:          0,
	}
}

// ProfileUpdate is a partial UserProfile. Nil fields are left untouched.
type ProfileUpdate struct {
	Gender      *Gender `json:"gender,omitempty"`
	Name        *string `json:"name,omitempty"`
	Mood        *string `json:"mood,omitempty"`
	WisdomLevel *int    `json:"wisdomLevel,omitempty"`
	XP          *int    `json:"xp,omitempty"`
}

// Theme holds the widget colours as CSS colour strings.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// DisplayConfig is the persisted presentation configuration.
// AssistantName and AssistantGender are derived from the user's gender.
type DisplayConfig struct {
	IsOpenDefault   bool   `json:"isOpen"`
	AssistantName   string `json:"assistantName"`
	AssistantGender Gender `json:"assistantGender"`
	Theme           Theme  `json:"theme"`
}

// DefaultDisplayConfig returns the built-in display configuration.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		IsOpenDefault:   false,
		AssistantName:   "Chanakya",
		AssistantGender: GenderNeutral,
		Theme: Theme{
			Primary:    "#6366f1",
			Secondary:  "#8b5cf6",
			Background: "rgba(255, 255, 255, 0.1)",
			Text:       "#1f2937",
		},
	}
}

// QuickReply is a canned suggestion shown under the input box.
type QuickReply struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// DefaultQuickReplies returns the static suggestion list.
func DefaultQuickReplies() []QuickReply {
	return []QuickReply{
		{ID: "1", Text: "How can I save money?", Emoji: "💰"},
		{ID: "2", Text: "I'm feeling stressed", Emoji: "😫"},
		{ID: "3", Text: "Tell me a tip", Emoji: "💡"},
	}
}

// Snapshot is a consistent, read-only copy of one conversation's state.
type Snapshot struct {
	Messages      []Message     `json:"messages"`
	IsOpen        bool          `json:"isOpen"`
	IsTyping      bool          `json:"isTyping"`
	Profile       UserProfile   `json:"userProfile"`
	DisplayConfig DisplayConfig `json:"displayConfig"`
	QuickReplies  []QuickReply  `json:"quickReplies"`
}
