// Package share implements the URL-safe compact codec for shared diagram
// state. The minimal state is msgpack-encoded and base64url-wrapped so it
// can travel in the fragment portion of a page URL.
package share

import (
	"encoding/base64"
	"fmt"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// FragmentParam is the fragment key carrying the encoded state, as in
// "#d=<token>".
const FragmentParam = "d"

// Encode packs a minimal state into a URL-safe token.
func Encode(st models.MinimalState) (string, error) {
	raw, err := msgpack.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("encoding share state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode unpacks a token produced by Encode.
func Decode(token string) (models.MinimalState, error) {
	var st models.MinimalState
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return st, fmt.Errorf("decoding share token: %w", err)
	}
	if err := msgpack.Unmarshal(raw, &st); err != nil {
		return st, fmt.Errorf("decoding share state: %w", err)
	}
	return st, nil
}

// BuildURL appends the encoded token to a base page URL as a fragment.
func BuildURL(baseURL, token string) string {
	return fmt.Sprintf("%s#%s=%s", baseURL, FragmentParam, token)
}
