// Package actions implements the Bear action adapter: it turns typed inputs
// into x-callback-url parameter mappings and parses the raw callback
// parameters back into typed results.
package actions

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Note is the full note payload returned by open-note.
type Note struct {
	Note             string   `json:"note"`
	Identifier       string   `json:"identifier"`
	Title            string   `json:"title"`
	Tags             TagNames `json:"tags,omitempty"`
	IsTrashed        string   `json:"is_trashed"`
	ModificationDate string   `json:"modificationDate"`
	CreationDate     string   `json:"creationDate"`
}

// NoteID identifies a note created by create or grab-url.
type NoteID struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
}

// NoteInfo is one entry of a notes listing (search, open-tag, sidebars).
type NoteInfo struct {
	Title            string   `json:"title"`
	Identifier       string   `json:"identifier"`
	Tags             TagNames `json:"tags,omitempty"`
	ModificationDate string   `json:"modificationDate"`
	CreationDate     string   `json:"creationDate"`
	Pin              string   `json:"pin"`
}

// ModifiedNote is the result of add-text.
type ModifiedNote struct {
	Note  string `json:"note"`
	Title string `json:"title"`
}

// TagNames decodes a tag list that Bear delivers either as a JSON array or
// as a string holding a JSON-encoded array nested inside a note object.
type TagNames []string

// UnmarshalJSON accepts both shapes.
func (t *TagNames) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*t = direct
		return nil
	}
	var nested string
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("tags are neither an array nor a string: %w", err)
	}
	if nested == "" {
		*t = nil
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(nested), &arr); err != nil {
		return fmt.Errorf("decode nested tags %q: %w", nested, err)
	}
	*t = arr
	return nil
}

// noteFromParams builds a Note from the open-note success parameters. The
// tags parameter, when present, is a JSON-encoded array.
func noteFromParams(v url.Values) (*Note, error) {
	n := &Note{
		Note:             v.Get("note"),
		Identifier:       v.Get("identifier"),
		Title:            v.Get("title"),
		IsTrashed:        stringOr(v, "is_trashed", "no"),
		ModificationDate: v.Get("modificationDate"),
		CreationDate:     v.Get("creationDate"),
	}
	if raw := v.Get("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &n.Tags); err != nil {
			return nil, fmt.Errorf("decode note tags: %w", err)
		}
	}
	return n, nil
}

// parseNotes decodes the JSON notes array that token-gated listing actions
// return in their "notes" parameter. A missing parameter means no matches.
func parseNotes(raw string) ([]NoteInfo, error) {
	if raw == "" {
		return []NoteInfo{}, nil
	}
	var notes []NoteInfo
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("decode notes listing: %w", err)
	}
	for i := range notes {
		if notes[i].Pin == "" {
			notes[i].Pin = "no"
		}
	}
	return notes, nil
}

// parseTagListing decodes the JSON tags array from the tags action. Entries
// without a name are skipped.
func parseTagListing(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var entries []map[string]string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode tag listing: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := e["name"]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func stringOr(v url.Values, key, fallback string) string {
	if s := v.Get(key); s != "" {
		return s
	}
	return fallback
}
