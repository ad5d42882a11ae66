package actions

import (
	"context"
	"net/url"
)

// ReplaceNoteInput replaces the content of an existing note. A non-empty
// Title switches Bear's add-text mode to replace_all so the title is
// replaced too.
type ReplaceNoteInput struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Text      string   `json:"text,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Timestamp bool     `json:"timestamp,omitempty"`
}

// ReplaceNote rewrites a note through Bear's add-text action.
func (a *Adapter) ReplaceNote(ctx context.Context, reqID string, in *ReplaceNoteInput) (*ModifiedNote, error) {
	mode := "replace"
	if in.Title != "" {
		mode = "replace_all"
	}
	params := url.Values{
		"mode":        {mode},
		"open_note":   {"no"},
		"new_window":  {"no"},
		"show_window": {"no"},
		"edit":        {"no"},
	}
	if in.ID != "" {
		params.Set("id", in.ID)
	}
	if in.Text != "" {
		params.Set("text", in.Text)
	}
	if in.Title != "" {
		params.Set("title", in.Title)
	}
	if len(in.Tags) > 0 {
		params.Set("tags", joinTags(in.Tags))
	}
	setYes(params, "timestamp", in.Timestamp)

	res, err := a.invoker.Invoke(ctx, reqID, "add-text", params)
	if err != nil {
		return nil, err
	}
	return &ModifiedNote{Note: res.Get("note"), Title: res.Get("title")}, nil
}
