// Package dispatcher routes incoming COMMS messages to Bear actions.
package dispatcher

import "encoding/json"

// ActionRequest is the JSON envelope for incoming COMMS action requests.
// ID doubles as the request identifier that correlates Bear's callback; an
// empty ID makes the bridge mint one.
type ActionRequest struct {
	ID     string             `json:"id"`
	Action string             `json:"action"`
	Params json.RawMessage    `json:"params,omitempty"`
	Ctx    *InvocationContext `json:"ctx,omitempty"`
}

// ActionResponse is the JSON envelope for COMMS action responses.
type ActionResponse struct {
	ID     string       `json:"id"`
	Ok     bool         `json:"ok"`
	Result interface{}  `json:"result,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail holds structured error information.
type ErrorDetail struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Retryable bool        `json:"retryable"`
}

// InvocationContext holds context from the caller.
type InvocationContext struct {
	RequestID string `json:"requestId,omitempty"`
	TimeoutMs int    `json:"timeoutMs,omitempty"`
}
