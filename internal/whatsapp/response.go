package whatsapp

import (
	"encoding/json"
	"net/http"
)

// Request is the immutable per-call input to a Sender. Credentials travel
// with the request so concurrent sends never share mutable auth state.
type Request struct {
	ChatID  string
	Token   string
	Payload map[string]any
}

// Response is the raw HTTP answer of the API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Truncated is set when the body exceeded the client's read cap.
	Truncated bool
}

// Decode parses the body as a JSON object. Malformed JSON is reported as a
// *SerializationError, never ignored.
func (r *Response) Decode() (map[string]any, error) {
	if r.Truncated {
		return nil, &SerializationError{Body: string(r.Body), Err: ErrResponseTooLarge}
	}
	var out map[string]any
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return nil, &SerializationError{Body: string(r.Body), Err: err}
	}
	return out, nil
}
