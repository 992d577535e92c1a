package conversation

import (
	"context"
	"log/slog"
)

// EventKind names something noteworthy that happened inside a Manager.
type EventKind string

const (
	// EventOpenStateReset is emitted at start-up with the stored open flag
	// that was read and then dropped.
	EventOpenStateReset EventKind = "open_state_reset"
	// EventStorageDiscarded reports a stored value replaced by defaults.
	EventStorageDiscarded EventKind = "storage_discarded"
	// EventStorageWriteFailed reports a failed fire-and-forget write.
	EventStorageWriteFailed EventKind = "storage_write_failed"
	EventWelcomeSent        EventKind = "welcome_sent"
	EventMessageSent        EventKind = "message_sent"
	EventReplyReceived      EventKind = "reply_received"
	EventReplyFailed        EventKind = "reply_failed"
	EventOpenToggled        EventKind = "open_toggled"
	EventProfileUpdated     EventKind = "profile_updated"
)

// Event carries the details of an EventKind. Unused fields are empty.
type Event struct {
	Kind      EventKind
	Key       string
	Value     string
	MessageID string
	Err       error
}

// Observer receives Manager events. Implementations must be fast and must
// not call back into the Manager; events are delivered while it is locked.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// NopObserver drops every event.
type NopObserver struct{}

func (NopObserver) Observe(Event) {}

type slogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver logs events through logger. Failures are logged at WARN,
// everything else at DEBUG.
func NewSlogObserver(logger *slog.Logger) Observer {
	return &slogObserver{logger: logger}
}

func (o *slogObserver) Observe(ev Event) {
	level := slog.LevelDebug
	if ev.Err != nil {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{slog.String("event", string(ev.Kind))}
	if ev.Key != "" {
		attrs = append(attrs, slog.String("key", ev.Key))
	}
	if ev.Value != "" {
		attrs = append(attrs, slog.String("value", ev.Value))
	}
	if ev.MessageID != "" {
		attrs = append(attrs, slog.String("message_id", ev.MessageID))
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.Any("error", ev.Err))
	}
	o.logger.LogAttrs(context.Background(), level, "Conversation event", attrs...)
}
