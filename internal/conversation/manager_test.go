package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rukmini-chat/backend/internal/model"
	"rukmini-chat/backend/internal/persistence"
	"rukmini-chat/backend/internal/reply"
	reply_mocks "rukmini-chat/backend/internal/reply/mocks"
	"rukmini-chat/backend/internal/repository"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// testConfig returns a Config with a deterministic clock and id source.
func testConfig() Config {
	var mu sync.Mutex
	tick := 0
	seq := 0
	return Config{
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			tick++
			return baseTime.Add(time.Duration(tick) * time.Millisecond)
		},
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("msg-%d", seq)
		},
	}
}

func ptr[T any](v T) *T { return &v }

// blockingClient holds every Send until release is closed, so tests can
// observe the manager while a reply is outstanding.
type blockingClient struct {
	started chan *reply.Request
	release chan struct{}
}

func newBlockingClient() *blockingClient {
	return &blockingClient{started: make(chan *reply.Request, 8), release: make(chan struct{})}
}

func (c *blockingClient) Send(ctx context.Context, req *reply.Request) (*reply.Payload, error) {
	c.started <- req
	select {
	case <-c.release:
		return &reply.Payload{Response: "echo: " + req.Message}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestNew_ForcesClosedAndDropsStoredOpenState(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Save(ctx, persistence.KeyOpenState, "true"))

	var seen []Event
	cfg := testConfig()
	cfg.Observer = ObserverFunc(func(ev Event) { seen = append(seen, ev) })

	m := New(ctx, store, reply_mocks.NewMockClient(t), cfg)

	assert.False(t, m.IsOpen())
	_, err := store.Load(ctx, persistence.KeyOpenState)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NotEmpty(t, seen)
	assert.Equal(t, EventOpenStateReset, seen[0].Kind)
	assert.Equal(t, "true", seen[0].Value)
}

func TestNew_FemaleUserScenario(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	cfg := testConfig()
	cfg.DefaultGender = model.GenderFemale
	cfg.UserName = "Asha"

	m := New(ctx, store, reply_mocks.NewMockClient(t), cfg)

	assert.Equal(t, model.UserProfile{Gender: model.GenderFemale, Name: "Asha", Mood: "neutral", WisdomLevel: 1, XP: 0}, m.Profile())

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.SenderAssistant, msgs[0].Sender)
	assert.Equal(t, "Hi, I'm Rukmini. How can I help you today?", msgs[0].Text)

	cfgOut := m.DisplayConfig()
	assert.Equal(t, "Rukmini", cfgOut.AssistantName)
	assert.Equal(t, model.GenderFemale, cfgOut.AssistantGender)

	// The derived persona is persisted for the next session.
	stored := persistence.NewAdapter(store, nil).LoadDisplayConfig(ctx)
	assert.Equal(t, "Rukmini", stored.AssistantName)
}

func TestNew_MalformedProfileFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Save(ctx, persistence.KeyUserProfile, `{"gender":"male","na`))
	require.NoError(t, store.Save(ctx, persistence.KeyDisplayConfig, `{{{`))

	var discarded []string
	cfg := testConfig()
	cfg.Observer = ObserverFunc(func(ev Event) {
		if ev.Kind == EventStorageDiscarded {
			discarded = append(discarded, ev.Key)
		}
	})

	m := New(ctx, store, reply_mocks.NewMockClient(t), cfg)

	assert.Equal(t, model.DefaultUserProfile(), m.Profile())
	assert.Equal(t, "Chanakya", m.DisplayConfig().AssistantName)
	assert.ElementsMatch(t, []string{persistence.KeyUserProfile, persistence.KeyDisplayConfig}, discarded)
}

func TestSendMessage_Success(t *testing.T) {
	ctx := context.Background()
	client := reply_mocks.NewMockClient(t)
	cfg := testConfig()
	cfg.DefaultGender = model.GenderMale
	m := New(ctx, repository.NewMemoryStore(), client, cfg)

	replyTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	client.On("Send", mock.Anything, &reply.Request{Message: "hi", Gender: "male", Mood: "neutral", Name: "Friend"}).
		Return(&reply.Payload{Response: "Hey! What's up?", Timestamp: replyTime}, nil).Once()

	before := len(m.Messages())
	assert.True(t, m.SendMessage(ctx, "hi"))

	msgs := m.Messages()
	require.Len(t, msgs, before+2)

	user, answer := msgs[before], msgs[before+1]
	assert.Equal(t, model.SenderUser, user.Sender)
	assert.Equal(t, "hi", user.Text)
	assert.NotEmpty(t, user.ID)

	assert.Equal(t, model.SenderAssistant, answer.Sender)
	assert.Equal(t, "Hey! What's up?", answer.Text)
	assert.Equal(t, replyTime, answer.Timestamp)
	assert.Equal(t, user.ID, answer.ReplyTo)
	assert.False(t, answer.IsError)
	assert.NotEqual(t, user.ID, answer.ID)

	assert.False(t, m.IsTyping())
}

func TestSendMessage_CannedRepliesFollowLiveProfile(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	m := New(ctx, store, reply.NewCannedClient("Friend"), testConfig())

	m.UpdateUserProfile(ctx, model.ProfileUpdate{Name: ptr("Asha")})
	require.True(t, m.SendMessage(ctx, "hi"))
	msgs := m.Messages()
	assert.Equal(t, "Hello Asha! How can I assist you today?", msgs[len(msgs)-1].Text)

	require.True(t, m.SendMessage(ctx, "I'm so stressed"))
	assert.Equal(t, "stressed", m.Profile().Mood)
	stored := persistence.NewAdapter(store, nil).LoadProfile(ctx, model.GenderNeutral, "Friend")
	assert.Equal(t, "stressed", stored.Mood)
}

func TestNew_DefaultPersonaLeavesNoDisplayConfigRow(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	New(ctx, store, reply_mocks.NewMockClient(t), testConfig())

	_, err := store.Load(ctx, persistence.KeyDisplayConfig)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSendMessage_FailureAddsErrorMessage(t *testing.T) {
	ctx := context.Background()
	client := reply_mocks.NewMockClient(t)
	m := New(ctx, repository.NewMemoryStore(), client, testConfig())

	client.On("Send", mock.Anything, mock.AnythingOfType("*reply.Request")).
		Return(nil, errors.New("connection refused")).Once()

	before := len(m.Messages())
	assert.True(t, m.SendMessage(ctx, "are you there?"))

	msgs := m.Messages()
	require.Len(t, msgs, before+2)
	last := msgs[len(msgs)-1]
	assert.Equal(t, model.SenderAssistant, last.Sender)
	assert.Equal(t, ErrorReplyText, last.Text)
	assert.True(t, last.IsError)
	assert.False(t, m.IsTyping())
}

func TestSendMessage_BlankIsNoop(t *testing.T) {
	ctx := context.Background()
	// No expectations: the reply service must not be called.
	m := New(ctx, repository.NewMemoryStore(), reply_mocks.NewMockClient(t), testConfig())
	before := m.Messages()

	for _, text := range []string{"", "   ", "\n\t"} {
		assert.False(t, m.SendMessage(ctx, text))
	}

	assert.Equal(t, before, m.Messages())
	assert.False(t, m.IsTyping())
}

func TestSendMessage_StoreStaysResponsiveWhileTyping(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	m := New(ctx, repository.NewMemoryStore(), client, testConfig())
	before := len(m.Messages())

	var wg sync.WaitGroup
	for _, text := range []string{"first", "second"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SendMessage(ctx, text)
		}()
	}
	<-client.started
	<-client.started

	// Both user messages are in, both replies are outstanding.
	assert.True(t, m.IsTyping())
	assert.Len(t, m.Messages(), before+2)

	assert.True(t, m.ToggleOpen(ctx, nil))
	m.UpdateUserProfile(ctx, model.ProfileUpdate{Mood: ptr("stressed")})
	assert.Equal(t, "stressed", m.Profile().Mood)

	close(client.release)
	wg.Wait()

	msgs := m.Messages()
	require.Len(t, msgs, before+4)
	assert.False(t, m.IsTyping())

	// Each answer is tied to its own question; none was lost.
	answers := map[string]string{}
	questions := map[string]string{}
	for _, msg := range msgs[before:] {
		if msg.Sender == model.SenderUser {
			questions[msg.ID] = msg.Text
		} else {
			answers[msg.ReplyTo] = msg.Text
		}
	}
	require.Len(t, answers, 2)
	for id, q := range questions {
		assert.Equal(t, "echo: "+q, answers[id])
	}
}

func TestSendMessage_CloseCancelsInFlightReply(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	m := New(ctx, repository.NewMemoryStore(), client, testConfig())

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.SendMessage(ctx, "hello?")
	}()
	<-client.started

	m.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SendMessage did not return after Close")
	}

	msgs := m.Messages()
	assert.True(t, msgs[len(msgs)-1].IsError)
	assert.False(t, m.IsTyping())
}

func TestAppendReply_ReplacesEarlierAnswerToSameMessage(t *testing.T) {
	m := New(context.Background(), repository.NewMemoryStore(), reply_mocks.NewMockClient(t), testConfig())

	m.mu.Lock()
	m.messages = append(m.messages, model.Message{ID: "u1", Sender: model.SenderUser, Text: "q"})
	m.appendReply(model.Message{ID: "a1", Sender: model.SenderAssistant, Text: "first", ReplyTo: "u1"})
	m.appendReply(model.Message{ID: "a2", Sender: model.SenderAssistant, Text: "again", ReplyTo: "u1"})
	m.appendReply(model.Message{ID: "a3", Sender: model.SenderAssistant, Text: "other", ReplyTo: "u2"})
	m.mu.Unlock()

	msgs := m.Messages()
	// welcome, u1, a2, a3
	require.Len(t, msgs, 4)
	assert.Equal(t, []string{"u1", "a2", "a3"}, []string{msgs[1].ID, msgs[2].ID, msgs[3].ID})
}

func TestToggleOpen(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	m := New(ctx, store, reply_mocks.NewMockClient(t), testConfig())

	assertStored := func(want string) {
		t.Helper()
		v, err := store.Load(ctx, persistence.KeyOpenState)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	assert.True(t, m.ToggleOpen(ctx, nil))
	assertStored("true")

	assert.False(t, m.ToggleOpen(ctx, nil))
	assertStored("false")

	assert.True(t, m.ToggleOpen(ctx, ptr(true)))
	assert.True(t, m.ToggleOpen(ctx, ptr(true)))
	assertStored("true")

	assert.False(t, m.ToggleOpen(ctx, ptr(false)))
	assert.False(t, m.IsOpen())
	assertStored("false")
}

func TestToggleOpen_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, repository.NewMemoryStore(), reply_mocks.NewMockClient(t), testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ToggleOpen(ctx, nil)
		}()
	}
	wg.Wait()

	// An even number of flips from false lands on false.
	assert.False(t, m.IsOpen())
}

func TestUpdateUserProfile(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	cfg := testConfig()
	cfg.DefaultGender = model.GenderFemale
	cfg.UserName = "Asha"
	m := New(ctx, store, reply_mocks.NewMockClient(t), cfg)

	t.Run("Merge keeps other fields and persists", func(t *testing.T) {
		got := m.UpdateUserProfile(ctx, model.ProfileUpdate{Mood: ptr("stressed")})

		want := model.UserProfile{Gender: model.GenderFemale, Name: "Asha", Mood: "stressed", WisdomLevel: 1, XP: 0}
		assert.Equal(t, want, got)
		assert.Equal(t, want, m.Profile())
		assert.Equal(t, want, persistence.NewAdapter(store, nil).LoadProfile(ctx, model.GenderNeutral, "Friend"))
	})

	t.Run("Invalid values keep previous ones", func(t *testing.T) {
		got := m.UpdateUserProfile(ctx, model.ProfileUpdate{
			Gender:      ptr(model.Gender("robot")),
			WisdomLevel: ptr(0),
			XP:          ptr(-5),
		})
		assert.Equal(t, model.GenderFemale, got.Gender)
		assert.Equal(t, 1, got.WisdomLevel)
		assert.Equal(t, 0, got.XP)
	})

	t.Run("Gender change re-derives persona without a second welcome", func(t *testing.T) {
		before := m.Messages()

		m.UpdateUserProfile(ctx, model.ProfileUpdate{Gender: ptr(model.GenderMale)})

		assert.Equal(t, "Krishna", m.DisplayConfig().AssistantName)
		assert.Equal(t, model.GenderMale, m.DisplayConfig().AssistantGender)
		assert.Equal(t, "Krishna", persistence.NewAdapter(store, nil).LoadDisplayConfig(ctx).AssistantName)
		assert.Equal(t, before, m.Messages())
	})
}

func TestWelcome_FiresOnce(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, repository.NewMemoryStore(), reply_mocks.NewMockClient(t), testConfig())

	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hi, I'm Chanakya. How can I help you today?", msgs[0].Text)

	// Even an emptied history does not bring the welcome back.
	m.mu.Lock()
	m.messages = nil
	m.welcome()
	m.mu.Unlock()
	assert.Empty(t, m.Messages())

	m.UpdateUserProfile(ctx, model.ProfileUpdate{Gender: ptr(model.GenderFemale)})
	assert.Empty(t, m.Messages())
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	m := New(ctx, repository.NewMemoryStore(), reply_mocks.NewMockClient(t), testConfig())
	m.ToggleOpen(ctx, nil)

	snap := m.Snapshot()
	assert.True(t, snap.IsOpen)
	assert.False(t, snap.IsTyping)
	assert.Len(t, snap.Messages, 1)
	assert.Equal(t, model.DefaultQuickReplies(), snap.QuickReplies)
	assert.Equal(t, m.Profile(), snap.Profile)

	// Mutating the copy must not leak into the manager.
	snap.Messages[0].Text = "changed"
	assert.NotEqual(t, "changed", m.Messages()[0].Text)
}

func TestStorageWriteFailuresAreObservedNotReturned(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: repository.NewMemoryStore()}

	var failed []string
	cfg := testConfig()
	cfg.Observer = ObserverFunc(func(ev Event) {
		if ev.Kind == EventStorageWriteFailed {
			failed = append(failed, ev.Key)
		}
	})

	m := New(ctx, store, reply_mocks.NewMockClient(t), cfg)
	store.failWrites = true

	assert.True(t, m.ToggleOpen(ctx, nil))
	assert.Contains(t, failed, persistence.KeyOpenState)
}

type failingStore struct {
	*repository.MemoryStore
	failWrites bool
}

func (s *failingStore) Save(ctx context.Context, key, value string) error {
	if s.failWrites {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.Save(ctx, key, value)
}
