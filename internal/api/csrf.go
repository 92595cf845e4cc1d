package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// TokenSource supplies the CSRF token sent with mutating requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, e.g. passed on the command line.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// FormTokenSource reads the token from the hidden csrfmiddlewaretoken field of
// an HTML page served by the backend. The first non-empty token is reused.
type FormTokenSource struct {
	client  *http.Client
	pageURL string

	mu     sync.Mutex
	cached string
}

// NewFormTokenSource returns a token source that fetches pageURL with client.
// The client should share the cookie jar used for API calls so the matching
// CSRF cookie is stored alongside the token.
func NewFormTokenSource(client *http.Client, pageURL string) *FormTokenSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &FormTokenSource{client: client, pageURL: pageURL}
}

func (s *FormTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != "" {
		return s.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build csrf page request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch csrf page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch csrf page: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	token, err := ExtractCSRFToken(resp.Body)
	if err != nil {
		return "", err
	}
	s.cached = token
	return token, nil
}

// Reset drops the cached token so the next call refetches the page.
func (s *FormTokenSource) Reset() {
	s.mu.Lock()
	s.cached = ""
	s.mu.Unlock()
}

// ExtractCSRFToken returns the value of the first element named
// csrfmiddlewaretoken in an HTML document, or "" when there is none.
func ExtractCSRFToken(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse csrf page: %w", err)
	}
	return findToken(doc), nil
}

func findToken(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "input" {
		var name, value string
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case "name":
				name = a.Val
			case "value":
				value = a.Val
			}
		}
		if name == CSRFFieldName {
			return value
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if tok := findToken(c); tok != "" {
			return tok
		}
	}
	return ""
}
