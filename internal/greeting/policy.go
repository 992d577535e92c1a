// Package greeting derives the assistant persona from the user's gender.
//
// The widget historically computed two contradictory pairings for the same
// input. This package is the single source of truth: a female user talks to
// Rukmini, a male user to Krishna and everyone else to Chanakya, and the
// welcome text always names the assistant the display config shows.
package greeting

import (
	"fmt"

	"rukmini-chat/backend/internal/model"
)

// Identity is the assistant persona presented to a user.
type Identity struct {
	AssistantName   string
	AssistantGender model.Gender
	WelcomeText     string
}

var personas = map[model.Gender]struct {
	name   string
	gender model.Gender
}{
	model.GenderFemale:  {name: "Rukmini", gender: model.GenderFemale},
	model.GenderMale:    {name: "Krishna", gender: model.GenderMale},
	model.GenderNeutral: {name: "Chanakya", gender: model.GenderNeutral},
}

// For returns the persona for a user of the given gender. Unknown values
// get the neutral persona.
func For(userGender model.Gender) Identity {
	p, ok := personas[userGender]
	if !ok {
		p = personas[model.GenderNeutral]
	}
	return Identity{
		AssistantName:   p.name,
		AssistantGender: p.gender,
		WelcomeText:     fmt.Sprintf("Hi, I'm %s. How can I help you today?", p.name),
	}
}

// Apply returns cfg with the assistant fields replaced by the persona for
// userGender. Theme and the open flag are kept.
func Apply(cfg model.DisplayConfig, userGender model.Gender) model.DisplayConfig {
	id := For(userGender)
	cfg.AssistantName = id.AssistantName
	cfg.AssistantGender = id.AssistantGender
	return cfg
}
