// Package tokencodec reads the claims out of a bearer token without
// verifying its signature. The claims are only good for presentation;
// the backend remains the authority on what a token may do.
package tokencodec

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload segment of a token.
type Claims map[string]any

// String returns the claim under key when it is present and a JSON string.
func (c Claims) String(key string) (string, bool) {
	v, ok := c[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DecodeError reports a token whose payload could not be read. Callers
// treat it as "no identity".
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return "decode token: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// padded payloads are produced by some issuers, so both forms are accepted.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the claims carried in the second dot-separated segment.
func Decode(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, &DecodeError{Reason: "missing payload segment"}
	}

	raw, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, &DecodeError{Reason: "payload is not base64url", Err: err}
	}

	if !utf8.Valid(raw) {
		return nil, &DecodeError{Reason: "payload is not UTF-8 text"}
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, &DecodeError{Reason: "payload is not a JSON object", Err: err}
	}
	if claims == nil {
		return nil, &DecodeError{Reason: "payload is not a JSON object"}
	}

	return claims, nil
}
