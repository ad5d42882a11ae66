package actions

import "context"

// OpenTagInput selects one tag, or several divided by comma.
type OpenTagInput struct {
	Name string `json:"name"`
}

// OpenTag lists the notes carrying the given tag.
func (a *Adapter) OpenTag(ctx context.Context, reqID string, in *OpenTagInput) ([]NoteInfo, error) {
	params, err := a.tokenParams("open-tag")
	if err != nil {
		return nil, err
	}
	params.Set("name", in.Name)

	res, err := a.invoker.Invoke(ctx, reqID, "open-tag", params)
	if err != nil {
		return nil, err
	}
	return parseNotes(res.Get("notes"))
}
