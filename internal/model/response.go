package model

import json "github.com/goccy/go-json"

// Result is the calculator's response body, kept opaque.
type Result = json.RawMessage

type SubmitResponse struct {
	RequestID   string    `json:"request_id"`
	URL         string    `json:"url"`
	StatusCode  int       `json:"status_code"`
	RequestBody Result    `json:"request_body"`
	Result      Result    `json:"result"`
	Snippet     string    `json:"snippet"`
	Edits       []PatchOp `json:"edits"`
}

// PatchOp is one RFC 6902 operation.
type PatchOp struct {
	Op    string
	Path  string
	Value any
}

func (p PatchOp) MarshalJSON() ([]byte, error) {
	if p.Op == "remove" {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
		}{p.Op, p.Path})
	}
	return json.Marshal(struct {
		Op    string `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
	}{p.Op, p.Path, p.Value})
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
