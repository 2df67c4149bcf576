package handler

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope of every JSON body: exactly one of Data or
// Error is set.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail is the client-facing part of an error. Details maps field names
// to validation messages.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON responds 200 with {"data": v} unless an option changes the status.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError responds with {"error": detail} and the given status.
func JSONError(status int, detail ErrorDetail, opts ...JSONOption) Response {
	r := &jsonResponse{status: status, body: JSONResponse{Error: &detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
