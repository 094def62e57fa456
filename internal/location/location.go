// Package location models the addressable location a party is viewed at: the
// page address whose query string carries the share token.
package location

import (
	"net/url"
	"strings"
	"sync"

	dnderr "github.com/KirkDiggler/party-share/internal/errors"
)

// Location is a readable and rewritable address
type Location interface {
	// Param returns a query parameter, or "" when absent
	Param(name string) string

	// ReplaceParam rewrites one query parameter in place without navigating.
	// An empty value removes the parameter.
	ReplaceParam(name, value string)

	// String returns the full current address
	String() string

	// WithParam returns the address with one parameter set, leaving the location as it is
	WithParam(name, value string) string
}

// URL is a Location backed by net/url
type URL struct {
	mu  sync.RWMutex
	url *url.URL
}

// Parse creates a location from an address
func Parse(raw string) (*URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, dnderr.InvalidArgumentf("invalid address %q: %v", raw, err)
	}
	return &URL{url: u}, nil
}

// Param returns a query parameter
func (l *URL) Param(name string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, pair := range strings.Split(l.url.RawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if unescape(key) != name {
			continue
		}
		return unescape(value)
	}
	return ""
}

// ReplaceParam rewrites one query parameter, leaving the other pairs byte for byte
func (l *URL) ReplaceParam(name, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.url.RawQuery = spliceParam(l.url.RawQuery, name, value)
}

// String returns the full address
func (l *URL) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.url.String()
}

// WithParam returns a copy of the address with one parameter set
func (l *URL) WithParam(name, value string) string {
	l.mu.RLock()
	u := *l.url
	l.mu.RUnlock()

	u.RawQuery = spliceParam(u.RawQuery, name, value)
	return u.String()
}

// spliceParam sets name in a raw query string. The first existing pair is
// replaced in place, later duplicates are dropped and a missing pair is
// appended. Pairs url.ParseQuery would reject, such as ones holding ';', are kept.
func spliceParam(rawQuery, name, value string) string {
	var pairs []string
	if rawQuery != "" {
		pairs = strings.Split(rawQuery, "&")
	}

	encoded := ""
	if value != "" {
		encoded = url.QueryEscape(name) + "=" + url.QueryEscape(value)
	}

	out := make([]string, 0, len(pairs)+1)
	replaced := false
	for _, pair := range pairs {
		key, _, _ := strings.Cut(pair, "=")
		if unescape(key) != name {
			out = append(out, pair)
			continue
		}
		if !replaced && encoded != "" {
			out = append(out, encoded)
		}
		replaced = true
	}
	if !replaced && encoded != "" {
		out = append(out, encoded)
	}

	return strings.Join(out, "&")
}

func unescape(s string) string {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		return unescaped
	}
	return s
}
