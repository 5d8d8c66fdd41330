// Package browser implements the "Internet Explorer" leaf: an address bar
// and the page currently framed. Pages are rendered by the client; nothing
// here touches the network.
package browser

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultURL is the page shown on open.
const DefaultURL = "https://web.archive.org/web/20011020140856/http://www.google.com/"

var (
	ErrEmptyURL   = errors.New("empty url")
	ErrInvalidURL = errors.New("invalid url")
)

// Browser holds the address bar input and the current page.
type Browser struct {
	input   string
	current string
}

// New opens on DefaultURL.
func New() *Browser {
	return &Browser{input: DefaultURL, current: DefaultURL}
}

// SetInput replaces the address bar text without navigating.
func (b *Browser) SetInput(s string) { b.input = s }

// Go navigates to the address bar text. Input not starting with "http" is
// given an https:// prefix, and the host is converted to its ASCII form.
func (b *Browser) Go() (string, error) {
	u, err := Normalize(b.input)
	if err != nil {
		return "", err
	}
	b.input = u
	b.current = u
	return u, nil
}

// Current returns the framed page.
func (b *Browser) Current() string { return b.current }

// Normalize applies the address bar rules to raw.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	if !strings.HasPrefix(strings.ToLower(raw), "http") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}

	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if port := u.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	}
	u.Host = host
	return u.String(), nil
}

// View is the rendered browser.
type View struct {
	Input string `json:"input"`
	URL   string `json:"url"`
}

func (b *Browser) View() View {
	return View{Input: b.input, URL: b.current}
}
