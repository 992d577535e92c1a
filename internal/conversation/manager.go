package conversation

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rukmini-chat/backend/internal/greeting"
	"rukmini-chat/backend/internal/model"
	"rukmini-chat/backend/internal/persistence"
	"rukmini-chat/backend/internal/reply"
	"rukmini-chat/backend/internal/repository"
)

// ErrorReplyText is shown in place of a reply when the reply service fails.
const ErrorReplyText = "Sorry, I encountered an error. Please try again later."

// Config holds the per-session settings a Manager is constructed with.
type Config struct {
	// DefaultGender and UserName seed the profile when storage has none.
	DefaultGender model.Gender
	UserName      string
	QuickReplies  []model.QuickReply
	Observer      Observer

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string
}

func (c Config) withDefaults() Config {
	if !c.DefaultGender.Valid() {
		c.DefaultGender = model.GenderNeutral
	}
	if c.UserName == "" {
		c.UserName = model.DefaultUserProfile().Name
	}
	if c.QuickReplies == nil {
		c.QuickReplies = model.DefaultQuickReplies()
	}
	if c.Observer == nil {
		c.Observer = NopObserver{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	return c
}

// Manager holds one conversation: message history, the open and typing
// flags, the user profile and the display config. All methods are safe
// for concurrent use. The lock is never held across a reply request, so
// toggles and profile updates go through while a reply is outstanding.
type Manager struct {
	mu       sync.Mutex
	messages []model.Message
	isOpen   bool
	pending  int
	profile  model.UserProfile
	display  model.DisplayConfig
	welcomed bool

	prefs        *persistence.Adapter
	replies      reply.Client
	observer     Observer
	quickReplies []model.QuickReply
	now          func() time.Time
	newID        func() string

	session context.Context
	cancel  context.CancelFunc
}

// New builds a Manager and runs the start-up sequence: the stored open flag
// is read, dropped and forced closed; profile and display config are loaded
// from store; the assistant persona is applied and the welcome message is
// added to the empty history.
func New(ctx context.Context, store repository.Store, replies reply.Client, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	session, cancel := context.WithCancel(context.WithoutCancel(ctx))

	m := &Manager{
		replies:      replies,
		observer:     cfg.Observer,
		quickReplies: cfg.QuickReplies,
		now:          cfg.Now,
		newID:        cfg.NewID,
		session:      session,
		cancel:       cancel,
	}
	m.prefs = persistence.NewAdapter(store, func(key string, err error) {
		m.observer.Observe(Event{Kind: EventStorageDiscarded, Key: key, Err: err})
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, _ := m.prefs.PeekOpenState(ctx)
	m.observer.Observe(Event{Kind: EventOpenStateReset, Key: persistence.KeyOpenState, Value: stored})
	m.report(persistence.KeyOpenState, m.prefs.ClearOpenState(ctx))
	m.isOpen = false

	m.profile = m.prefs.LoadProfile(ctx, cfg.DefaultGender, cfg.UserName)
	m.display = m.prefs.LoadDisplayConfig(ctx)
	m.applyIdentity(ctx)
	m.welcome()

	return m
}

// SendMessage appends text as a user message and asks the reply service for
// an answer, blocking until the answer (or the error message) has been
// appended. Blank text is ignored and false is returned.
func (m *Manager) SendMessage(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	m.mu.Lock()
	userMsg := model.Message{
		ID:        m.newID(),
		Text:      text,
		Sender:    model.SenderUser,
		Timestamp: m.now(),
	}
	m.messages = append(m.messages, userMsg)
	m.pending++
	req := &reply.Request{Message: text, Gender: string(m.profile.Gender), Mood: m.profile.Mood, Name: m.profile.Name}
	m.observer.Observe(Event{Kind: EventMessageSent, MessageID: userMsg.ID})
	m.mu.Unlock()

	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.session, cancel)
	payload, err := m.replies.Send(reqCtx, req)
	stop()
	cancel()
	if err == nil && payload == nil {
		err = errors.New("reply service returned no payload")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending--

	answer := model.Message{
		ID:        m.newID(),
		Sender:    model.SenderAssistant,
		Timestamp: m.now(),
		ReplyTo:   userMsg.ID,
	}
	if err != nil {
		answer.Text = ErrorReplyText
		answer.IsError = true
		m.observer.Observe(Event{Kind: EventReplyFailed, MessageID: userMsg.ID, Err: err})
	} else {
		answer.Text = payload.Response
		if !payload.Timestamp.IsZero() {
			answer.Timestamp = payload.Timestamp
		}
		m.observer.Observe(Event{Kind: EventReplyReceived, MessageID: answer.ID})
		m.applyMood(ctx, payload.Mood)
	}
	m.appendReply(answer)
	return true
}

// appendReply adds an assistant answer, first dropping any earlier answer to
// the same user message so a reply is never shown twice.
func (m *Manager) appendReply(answer model.Message) {
	m.messages = slices.DeleteFunc(m.messages, func(msg model.Message) bool {
		return msg.Sender == model.SenderAssistant && msg.ReplyTo != "" && msg.ReplyTo == answer.ReplyTo
	})
	m.messages = append(m.messages, answer)
}

// UpdateUserProfile merges update into the profile and persists the result.
// An unknown gender, a wisdom level below 1 or negative XP keep the previous
// value. A gender change re-derives the assistant persona.
func (m *Manager) UpdateUserProfile(ctx context.Context, update model.ProfileUpdate) model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.profile
	if update.Gender != nil && update.Gender.Valid() {
		next.Gender = *update.Gender
	}
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.Mood != nil {
		next.Mood = *update.Mood
	}
	if update.WisdomLevel != nil && *update.WisdomLevel >= 1 {
		next.WisdomLevel = *update.WisdomLevel
	}
	if update.XP != nil && *update.XP >= 0 {
		next.XP = *update.XP
	}

	genderChanged := next.Gender != m.profile.Gender
	m.profile = next
	m.report(persistence.KeyUserProfile, m.prefs.SaveProfile(ctx, next))
	m.observer.Observe(Event{Kind: EventProfileUpdated, Value: string(next.Gender)})

	if genderChanged {
		m.applyIdentity(ctx)
		m.welcome()
	}
	return next
}

// ToggleOpen sets the open flag to *force when force is non-nil and flips it
// otherwise. The new value is persisted and returned.
func (m *Manager) ToggleOpen(ctx context.Context, force *bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if force != nil {
		m.isOpen = *force
	} else {
		m.isOpen = !m.isOpen
	}
	m.report(persistence.KeyOpenState, m.prefs.SaveOpenState(ctx, m.isOpen))
	m.observer.Observe(Event{Kind: EventOpenToggled, Key: persistence.KeyOpenState, Value: strconv.FormatBool(m.isOpen)})
	return m.isOpen
}

// Messages returns a copy of the history in insertion order.
func (m *Manager) Messages() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.messages)
}

// IsOpen reports whether the widget is open.
func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isOpen
}

// IsTyping reports whether at least one reply request is outstanding.
func (m *Manager) IsTyping() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending > 0
}

// Profile returns the current user profile.
func (m *Manager) Profile() model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// DisplayConfig returns the display config, persona included.
func (m *Manager) DisplayConfig() model.DisplayConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.display
}

// QuickReplies returns a copy of the static suggestion list.
func (m *Manager) QuickReplies() []model.QuickReply {
	return slices.Clone(m.quickReplies)
}

// Snapshot returns every field of the conversation read under one lock.
func (m *Manager) Snapshot() model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.Snapshot{
		Messages:      slices.Clone(m.messages),
		IsOpen:        m.isOpen,
		IsTyping:      m.pending > 0,
		Profile:       m.profile,
		DisplayConfig: m.display,
		QuickReplies:  slices.Clone(m.quickReplies),
	}
}

// Close cancels reply requests still in flight. The Manager stays readable.
func (m *Manager) Close() {
	m.cancel()
}

// applyIdentity must be called with mu held. The display config is only
// written when the persona actually changes it, so a client that never
// leaves the defaults leaves no row behind.
func (m *Manager) applyIdentity(ctx context.Context) {
	next := greeting.Apply(m.display, m.profile.Gender)
	if next == m.display {
		return
	}
	m.display = next
	m.report(persistence.KeyDisplayConfig, m.prefs.SaveDisplayConfig(ctx, m.display))
}

// applyMood must be called with mu held. It records a mood the reply
// client inferred from the user's message.
func (m *Manager) applyMood(ctx context.Context, mood string) {
	if mood == "" || mood == m.profile.Mood {
		return
	}
	m.profile.Mood = mood
	m.report(persistence.KeyUserProfile, m.prefs.SaveProfile(ctx, m.profile))
	m.observer.Observe(Event{Kind: EventProfileUpdated, Key: persistence.KeyUserProfile, Value: mood})
}

// welcome must be called with mu held. It fires at most once per Manager
// and only while the history is empty.
func (m *Manager) welcome() {
	if m.welcomed || len(m.messages) > 0 || m.display.AssistantName == "" {
		return
	}
	m.welcomed = true
	msg := model.Message{
		ID:        m.newID(),
		Text:      greeting.For(m.profile.Gender).WelcomeText,
		Sender:    model.SenderAssistant,
		Timestamp: m.now(),
	}
	m.messages = []model.Message{msg}
	m.observer.Observe(Event{Kind: EventWelcomeSent, MessageID: msg.ID})
}

func (m *Manager) report(key string, err error) {
	if err != nil {
		m.observer.Observe(Event{Kind: EventStorageWriteFailed, Key: key, Err: err})
	}
}
