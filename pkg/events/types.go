// Package events defines event types and publisher interfaces for note
// change events emitted after successful mutating actions.
package events

// NoteChangedEvent is emitted after Bear confirms a mutating action.
// Identifier and Title are empty when the action's callback does not carry
// them (tag administration, trash, archive).
type NoteChangedEvent struct {
	Action     string `json:"action"`
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title,omitempty"`
	Timestamp  string `json:"timestamp"`
}
