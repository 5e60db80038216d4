package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Response Structure
// --------------------------------------------------------------------------

// Status is the top-level outcome of a request. NotFound is a first-class,
// non-exceptional outcome; Error covers both business rejections and
// dependency failures, distinguished by their message.
type Status string

const (
	StatusOk       Status = "ok"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// Response is the single JSON object written back for every request.
// Ok responses carry Data (object or array depending on the command),
// error responses carry Message.
type Response struct {
	Status  Status `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Grade is the wire form of a grade record, optionally enriched with the
// canonical student name resolved from the roster. Enrichment is
// best-effort: when the roster misses, Nombre is simply omitted.
type Grade struct {
	StudentID string `json:"ID_Estudiante"`
	Name      string `json:"Nombre,omitempty"`
	Subject   string `json:"Materia"`
	Grade     string `json:"Calificacion"`
}

// --------------------------------------------------------------------------
// Response Factory Functions
// --------------------------------------------------------------------------

// NewOkResponse creates an ok response carrying the given payload.
func NewOkResponse(data any) *Response {
	return &Response{Status: StatusOk, Data: data}
}

// NewNotFoundResponse creates a not_found response.
func NewNotFoundResponse(msg string) *Response {
	return &Response{Status: StatusNotFound, Message: msg}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(msg string) *Response {
	return &Response{Status: StatusError, Message: msg}
}

// NewErrorResponsef creates an error response with a formatted message.
func NewErrorResponsef(format string, args ...any) *Response {
	return &Response{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Encode serializes the response as a single JSON object (no trailing
// newline; the transport adds the line terminator).
func (r *Response) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeResponse parses one JSON response line.
func DecodeResponse(line []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("invalid response payload: %w", err)
	}
	return &resp, nil
}
