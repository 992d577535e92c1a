package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"rukmini-chat/backend/internal/model"
	"rukmini-chat/backend/internal/repository"
)

// Storage keys shared with the browser widget.
const (
	KeyOpenState     = "chatIsOpen"
	KeyUserProfile   = "chatUserContext"
	KeyDisplayConfig = "chatConfig"
)

// DiscardFunc is told about stored values that were unreadable and replaced
// by defaults. It must not block.
type DiscardFunc func(key string, err error)

// Adapter reads and writes the three widget entries on top of a raw Store.
// Reads never fail: missing or malformed data falls back to defaults.
type Adapter struct {
	store     repository.Store
	onDiscard DiscardFunc
}

func NewAdapter(store repository.Store, onDiscard DiscardFunc) *Adapter {
	if onDiscard == nil {
		onDiscard = func(string, error) {}
	}
	return &Adapter{store: store, onDiscard: onDiscard}
}

// PeekOpenState returns the raw stored open flag, if any. The value is only
// of diagnostic interest because sessions always start closed.
func (a *Adapter) PeekOpenState(ctx context.Context) (string, bool) {
	v, err := a.store.Load(ctx, KeyOpenState)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			a.onDiscard(KeyOpenState, err)
		}
		return "", false
	}
	return v, true
}

func (a *Adapter) SaveOpenState(ctx context.Context, open bool) error {
	return a.store.Save(ctx, KeyOpenState, strconv.FormatBool(open))
}

func (a *Adapter) ClearOpenState(ctx context.Context) error {
	return a.store.Remove(ctx, KeyOpenState)
}

// LoadProfile returns the stored profile merged over the defaults. A stored
// gender outside the enum is replaced by fallbackGender and an empty name
// by fallbackName; the same two fallbacks apply when nothing usable is
// stored.
func (a *Adapter) LoadProfile(ctx context.Context, fallbackGender model.Gender, fallbackName string) model.UserProfile {
	defaults := model.DefaultUserProfile()
	if fallbackGender.Valid() {
		defaults.Gender = fallbackGender
	}
	if fallbackName != "" {
		defaults.Name = fallbackName
	}

	raw, ok := a.load(ctx, KeyUserProfile)
	if !ok {
		return defaults
	}

	parsed := defaults
	parsed.Gender = ""
	parsed.Name = ""
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		a.onDiscard(KeyUserProfile, fmt.Errorf("malformed profile: %w", err))
		return defaults
	}

	if !parsed.Gender.Valid() {
		parsed.Gender = defaults.Gender
	}
	if parsed.Name == "" {
		parsed.Name = defaults.Name
	}
	if parsed.WisdomLevel < 1 {
		parsed.WisdomLevel = defaults.WisdomLevel
	}
	if parsed.XP < 0 {
		parsed.XP = defaults.XP
	}
	return parsed
}

func (a *Adapter) SaveProfile(ctx context.Context, p model.UserProfile) error {
	return a.save(ctx, KeyUserProfile, p)
}

// LoadDisplayConfig returns the stored display config, or the built-in one
// when nothing usable is stored. Fields missing from the stored JSON keep
// their built-in values.
func (a *Adapter) LoadDisplayConfig(ctx context.Context) model.DisplayConfig {
	cfg := model.DefaultDisplayConfig()
	raw, ok := a.load(ctx, KeyDisplayConfig)
	if !ok {
		return cfg
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		a.onDiscard(KeyDisplayConfig, fmt.Errorf("malformed display config: %w", err))
		return model.DefaultDisplayConfig()
	}
	return cfg
}

func (a *Adapter) SaveDisplayConfig(ctx context.Context, cfg model.DisplayConfig) error {
	return a.save(ctx, KeyDisplayConfig, cfg)
}

func (a *Adapter) load(ctx context.Context, key string) (string, bool) {
	raw, err := a.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			a.onDiscard(key, err)
		}
		return "", false
	}
	return raw, true
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return a.store.Save(ctx, key, string(val))
}
