package reply

import (
	"context"
	"strings"
)

// MoodStressed is reported when the user says they are stressed or anxious.
const MoodStressed = "stressed"

// CannedClient answers from a handful of keyword rules without any network
// access. It backs offline mode and is the fallback of the /chat endpoint.
type CannedClient struct {
	// Name is used in greetings when the request carries none.
	// "Friend" and "" are treated as anonymous.
	Name string
}

func NewCannedClient(name string) *CannedClient {
	return &CannedClient{Name: name}
}

// Send answers req, greeting the user by req.Name when it is set.
func (c *CannedClient) Send(_ context.Context, req *Request) (*Payload, error) {
	name := req.Name
	if name == "" {
		name = c.Name
	}
	answer, mood := c.reply(req.Message, name)
	return &Payload{Response: answer, Mood: mood}, nil
}

// Respond picks the canned answer for text.
func (c *CannedClient) Respond(text string) string {
	answer, _ := c.reply(text, c.Name)
	return answer
}

func (c *CannedClient) reply(text, name string) (answer, mood string) {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "hello", "hi", "hey"):
		if name != "" && name != "Friend" {
			return "Hello " + name + "! How can I assist you today?", ""
		}
		return "Hello! How can I assist you today?", ""
	case strings.Contains(lower, "thank"):
		return "You're welcome! Is there anything else I can help with?", ""
	case containsAny(lower, "money", "save"):
		return "A great way to save money is to follow the 50/30/20 rule: 50% needs, 30% wants, and 20% savings.", ""
	case containsAny(lower, "stressed", "anxious"):
		return "I'm sorry to hear you're feeling stressed. Try taking a few deep breaths. Would you like me to guide you through a quick breathing exercise?", MoodStressed
	default:
		return "That's an interesting thought. I'm here to help with financial advice and wellness tips. Could you tell me more about what you're looking for?", ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
