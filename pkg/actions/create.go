package actions

import (
	"context"
	"net/url"
	"strings"
)

// CreateInput holds the fields of a new note. Empty notes are rejected by
// Bear itself.
type CreateInput struct {
	Title     string   `json:"title,omitempty"`
	Text      string   `json:"text,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Timestamp bool     `json:"timestamp,omitempty"`
}

// Create creates a new note and returns its identifier.
func (a *Adapter) Create(ctx context.Context, reqID string, in *CreateInput) (*NoteID, error) {
	params := url.Values{
		"open_note":   {"no"},
		"new_window":  {"no"},
		"float":       {"no"},
		"show_window": {"no"},
	}
	if in.Title != "" {
		params.Set("title", in.Title)
	}
	if in.Text != "" {
		text := in.Text
		if in.Title != "" {
			// Bear prepends the title itself; drop a leading markdown copy.
			text = strings.TrimPrefix(text, "# "+in.Title)
		}
		params.Set("text", text)
	}
	if len(in.Tags) > 0 {
		params.Set("tags", joinTags(in.Tags))
	}
	setYes(params, "timestamp", in.Timestamp)

	res, err := a.invoker.Invoke(ctx, reqID, "create", params)
	if err != nil {
		return nil, err
	}
	return &NoteID{Identifier: res.Get("identifier"), Title: res.Get("title")}, nil
}
