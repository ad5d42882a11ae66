package actions

// Spec describes one catalog entry: the caller-facing action name, the Bear
// x-callback-url action it maps to, and routing attributes. The catalog is
// plain data so callers can enumerate and validate the surface mechanically.
type Spec struct {
	Name        string
	BearAction  string
	Description string
	NeedsToken  bool
	// Mutating actions change note or tag state; the server publishes a
	// note-changed event after each successful one.
	Mutating bool
}

var catalog = []Spec{
	{Name: "open-note", BearAction: "open-note", Description: "Open a note by id or title and return its content."},
	{Name: "create", BearAction: "create", Description: "Create a new note and return its unique identifier.", Mutating: true},
	{Name: "replace-note", BearAction: "add-text", Description: "Replace the content of an existing note.", Mutating: true},
	{Name: "add-file", BearAction: "add-file", Description: "Append or prepend a file to a note.", Mutating: true},
	{Name: "tags", BearAction: "tags", Description: "List all tags in Bear's sidebar.", NeedsToken: true},
	{Name: "open-tag", BearAction: "open-tag", Description: "List the notes carrying a tag.", NeedsToken: true},
	{Name: "rename-tag", BearAction: "rename-tag", Description: "Rename an existing tag.", Mutating: true},
	{Name: "delete-tag", BearAction: "delete-tag", Description: "Delete an existing tag.", Mutating: true},
	{Name: "trash", BearAction: "trash", Description: "Move a note to the trash.", Mutating: true},
	{Name: "archive", BearAction: "archive", Description: "Move a note to the archive.", Mutating: true},
	{Name: "untagged", BearAction: "untagged", Description: "List untagged notes.", NeedsToken: true},
	{Name: "todo", BearAction: "todo", Description: "List notes in the Todo sidebar.", NeedsToken: true},
	{Name: "today", BearAction: "today", Description: "List notes in the Today sidebar.", NeedsToken: true},
	{Name: "locked", BearAction: "locked", Description: "List locked notes.", NeedsToken: true},
	{Name: "search", BearAction: "search", Description: "Search notes, optionally within a tag.", NeedsToken: true},
	{Name: "grab-url", BearAction: "grab-url", Description: "Create a note from a web page.", Mutating: true},
}

// Specs returns the full action catalog in declaration order.
func Specs() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the catalog entry for a caller-facing action name.
func Lookup(name string) (Spec, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
