package commsutil

import "fmt"

// Default COMMS subjects.
const (
	// SubjectActions is the request/reply subject the bridge serves.
	SubjectActions = "bear.actions.v1"
	// SubjectNoteChanged is the global note-change event subject.
	SubjectNoteChanged = "bear.note.changed"
)

// BuildNoteChangedSubject builds the granular note-change subject for one
// action name.
func BuildNoteChangedSubject(action string) string {
	return fmt.Sprintf("%s.%s", SubjectNoteChanged, action)
}
