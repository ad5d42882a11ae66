package actions

import "context"

// SearchInput searches all notes, or only those under Tag when set.
type SearchInput struct {
	Term string `json:"term,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// Search returns the notes matching the search input.
func (a *Adapter) Search(ctx context.Context, reqID string, in *SearchInput) ([]NoteInfo, error) {
	params, err := a.tokenParams("search")
	if err != nil {
		return nil, err
	}
	params.Set("show_window", "no")
	if in.Term != "" {
		params.Set("term", in.Term)
	}
	if in.Tag != "" {
		params.Set("tag", in.Tag)
	}

	res, err := a.invoker.Invoke(ctx, reqID, "search", params)
	if err != nil {
		return nil, err
	}
	return parseNotes(res.Get("notes"))
}
