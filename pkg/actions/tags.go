package actions

import "context"

// Tags returns all tags currently shown in Bear's sidebar.
func (a *Adapter) Tags(ctx context.Context, reqID string) ([]string, error) {
	params, err := a.tokenParams("tags")
	if err != nil {
		return nil, err
	}
	res, err := a.invoker.Invoke(ctx, reqID, "tags", params)
	if err != nil {
		return nil, err
	}
	return parseTagListing(res.Get("tags"))
}
