package events

import "context"

// EventPublisher is the interface for publishing note change events.
type EventPublisher interface {
	PublishNoteChanged(ctx context.Context, event *NoteChangedEvent) error
}

// NoOpPublisher is an EventPublisher that does nothing (for running the
// bridge without a COMMS connection).
type NoOpPublisher struct{}

// PublishNoteChanged is a no-op.
func (p *NoOpPublisher) PublishNoteChanged(_ context.Context, _ *NoteChangedEvent) error {
	return nil
}

// CallbackPublisher is an EventPublisher that calls a callback function
// (for testing).
type CallbackPublisher struct {
	callback func(ctx context.Context, event *NoteChangedEvent) error
}

// NewCallbackPublisher creates a new CallbackPublisher.
func NewCallbackPublisher(cb func(ctx context.Context, event *NoteChangedEvent) error) *CallbackPublisher {
	return &CallbackPublisher{callback: cb}
}

// PublishNoteChanged calls the callback.
func (p *CallbackPublisher) PublishNoteChanged(ctx context.Context, event *NoteChangedEvent) error {
	return p.callback(ctx, event)
}
