// Package codec converts party snapshots to and from the JSON form kept in local
// storage and the compact URL-safe token carried in share links.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/party-share/internal/domain/party"
	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

// TokenParam is the query parameter that carries the token in a share link
const TokenParam = "p"

const (
	padChar = "="

	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

var tokenEncoding = base64.URLEncoding

// requiredFields must be present in every snapshot object; theme may be left out
var requiredFields = []string{"characters", "remnants"}

// Marshal returns the JSON form of a snapshot
func Marshal(snap party.Snapshot) ([]byte, error) {
	if err := snap.Validate(); err != nil {
		return nil, dnderr.InvalidArgumentf("invalid snapshot: %v", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snap); err != nil {
		return nil, dnderr.Wrap(err, "failed to marshal snapshot")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal parses and validates the JSON form of a snapshot
func Unmarshal(data []byte) (party.Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return party.Snapshot{}, dnderr.MalformedToken("snapshot is not a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return party.Snapshot{}, dnderr.WrapWithCode(err, dnderr.CodeMalformedToken, "failed to parse snapshot")
	}
	for key := range fields {
		if key != "theme" && !slices.Contains(requiredFields, key) {
			return party.Snapshot{}, dnderr.MalformedTokenf("snapshot has unknown field %q", key)
		}
	}
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			return party.Snapshot{}, dnderr.MalformedTokenf("snapshot has no %q field", key)
		}
	}

	var snap party.Snapshot
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return party.Snapshot{}, dnderr.WrapWithCode(err, dnderr.CodeMalformedToken, "failed to parse snapshot")
	}
	if err := snap.Validate(); err != nil {
		return party.Snapshot{}, dnderr.WrapWithCode(err, dnderr.CodeMalformedToken, "invalid snapshot")
	}
	return snap, nil
}

// Encode turns a snapshot into a token safe to place in a URL query value.
// The JSON text is widened to its UTF-8 bytes before the base64url transform
// and trailing padding is stripped.
func Encode(snap party.Snapshot) (string, error) {
	utf8JSON, err := Marshal(snap)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(tokenEncoding.EncodeToString(utf8JSON), padChar), nil
}

// Decode reverses Encode. Padding is restored from the token length; any
// failure is reported as a malformed token.
func Decode(token string) (party.Snapshot, error) {
	token = strings.TrimRight(strings.TrimSpace(token), padChar)
	if token == "" {
		return party.Snapshot{}, dnderr.MalformedToken("token is empty")
	}
	if i := strings.IndexFunc(token, func(r rune) bool {
		return !strings.ContainsRune(tokenAlphabet, r)
	}); i >= 0 {
		return party.Snapshot{}, dnderr.MalformedTokenf("token has invalid character at position %d", i).
			WithMeta("token_length", len(token))
	}

	switch len(token) % 4 {
	case 1:
		return party.Snapshot{}, dnderr.MalformedToken("token length is not valid base64").
			WithMeta("token_length", len(token))
	case 2:
		token += padChar + padChar
	case 3:
		token += padChar
	}

	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return party.Snapshot{}, dnderr.WrapWithCode(err, dnderr.CodeMalformedToken, "failed to decode token")
	}
	if !utf8.Valid(raw) {
		return party.Snapshot{}, dnderr.MalformedToken("token payload is not valid UTF-8")
	}
	return Unmarshal(raw)
}

// ExtractToken accepts a bare token or a full share link and returns the token
func ExtractToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", dnderr.MalformedToken("nothing to import")
	}
	if !strings.Contains(raw, "?") && !strings.Contains(raw, "://") {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeMalformedToken, "failed to parse share link")
	}
	token := u.Query().Get(TokenParam)
	if token == "" {
		return "", dnderr.MalformedTokenf("share link has no %q parameter", TokenParam)
	}
	return token, nil
}
