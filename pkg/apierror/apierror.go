package apierror

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldMessage is one entry of the backend's errorsMessages list.
type FieldMessage struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// APIError is a rejection answered by the blog backend.
type APIError struct {
	HTTPStatus int            `json:"-"`
	Messages   []FieldMessage `json:"errorsMessages,omitempty"`
	Body       string         `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if len(e.Messages) > 0 {
		parts := make([]string, 0, len(e.Messages))
		for _, m := range e.Messages {
			if m.Field != "" {
				parts = append(parts, m.Field+": "+m.Message)
			} else {
				parts = append(parts, m.Message)
			}
		}
		return fmt.Sprintf("backend status %d: %s", e.HTTPStatus, strings.Join(parts, "; "))
	}

	if e.Body != "" {
		return fmt.Sprintf("backend status %d: %s", e.HTTPStatus, e.Body)
	}

	return fmt.Sprintf("backend status %d", e.HTTPStatus)
}

// FieldErrors groups the backend messages by field name.
func (e *APIError) FieldErrors() map[string]string {
	if e == nil || len(e.Messages) == 0 {
		return nil
	}

	out := make(map[string]string, len(e.Messages))
	for _, m := range e.Messages {
		if m.Field == "" {
			continue
		}
		if _, exists := out[m.Field]; !exists {
			out[m.Field] = m.Message
		}
	}
	return out
}

const maxBodyInError = 256

// Parse builds an APIError from a response status and body. Bodies that are
// not the backend's error envelope are kept as text, truncated.
func Parse(status int, body []byte) *APIError {
	apiErr := &APIError{HTTPStatus: status}
	if len(body) == 0 {
		return apiErr
	}

	var payload struct {
		ErrorsMessages []FieldMessage `json:"errorsMessages"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.ErrorsMessages) > 0 {
		apiErr.Messages = payload.ErrorsMessages
		return apiErr
	}

	apiErr.Body = truncate(strings.TrimSpace(string(body)), maxBodyInError)
	return apiErr
}

// truncate cuts text to at most limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
