package actions

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const logPrefix = "actions:adapter"

// Invoker dispatches one action to Bear and returns the raw parameters of
// its success callback.
type Invoker interface {
	Invoke(ctx context.Context, id, action string, params url.Values) (url.Values, error)
}

// Adapter translates typed action inputs into Bear parameter mappings and
// parses callback responses. It holds no per-request state.
type Adapter struct {
	invoker Invoker
	token   string
	client  *http.Client
}

// NewAdapterParams holds parameters for NewAdapter.
type NewAdapterParams struct {
	Invoker Invoker
	// Token is Bear's API token, required by listing actions.
	Token string
	// HTTPClient fetches http(s) file arguments for add-file; nil uses
	// http.DefaultClient.
	HTTPClient *http.Client
}

// NewAdapter creates an Adapter.
func NewAdapter(params NewAdapterParams) *Adapter {
	client := params.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Adapter{invoker: params.Invoker, token: params.Token, client: client}
}

// tokenParams returns a parameter set pre-filled with the API token, failing
// when none is configured.
func (a *Adapter) tokenParams(action string) (url.Values, error) {
	if a.token == "" {
		return nil, fmt.Errorf("%s - BEAR_TOKEN is required for %s", logPrefix, action)
	}
	return url.Values{"token": {a.token}}, nil
}

// joinTags comma-joins a tag list the way Bear expects list parameters.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// setYes sets a literal "yes" flag when enabled; Bear booleans are the
// strings "yes" and "no".
func setYes(v url.Values, key string, enabled bool) {
	if enabled {
		v.Set(key, "yes")
	}
}
