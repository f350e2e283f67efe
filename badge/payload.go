package badge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPayloadUnavailable is returned when the hydration payload is missing,
// empty or not valid JSON.
var ErrPayloadUnavailable = errors.New("hydration payload unavailable")

// ParsePayload decodes the text of the payload element
func ParsePayload(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrPayloadUnavailable
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadUnavailable, err)
	}
	if v == nil {
		return nil, ErrPayloadUnavailable
	}
	return v, nil
}
