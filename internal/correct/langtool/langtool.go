// Package langtool adapts a LanguageTool server to the correction
// pipeline's capability interfaces.
//
// A single Client talks to the server's /v2/check endpoint and implements
// correct.GrammarChecker directly. The Speller type layers the
// spell-checking interface on top of the same endpoint by checking the
// word list as one request and keeping the spelling-rule matches.
//
// The constructor verifies the server is reachable, so a missing or dead
// server surfaces at startup as an error the caller can act on (typically
// by running the pipeline without the grammar and spelling passes) rather
// than as a silent per-call failure.
package langtool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ironsheep/scantext/internal/correct"
)

// DefaultTimeout bounds each HTTP call to the server.
const DefaultTimeout = 10 * time.Second

// Client is a LanguageTool HTTP API client implementing
// correct.GrammarChecker.
type Client struct {
	baseURL  string
	language string
	httpc    *http.Client
}

// New creates a client for the LanguageTool server at baseURL (e.g.
// "http://localhost:8010") checking text in the given language code (e.g.
// "ru"). It pings the server and fails when it is unreachable.
func New(baseURL, language string) (*Client, error) {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		httpc:    &http.Client{Timeout: DefaultTimeout},
	}

	resp, err := c.httpc.Get(c.baseURL + "/v2/languages")
	if err != nil {
		return nil, fmt.Errorf("languagetool server unreachable: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool server returned status %d", resp.StatusCode)
	}
	return c, nil
}

// checkResponse mirrors the subset of the /v2/check response we consume.
type checkResponse struct {
	Matches []struct {
		Offset       int `json:"offset"`
		Length       int `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			Category struct {
				ID string `json:"id"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check sends text to /v2/check and converts the response into pipeline
// matches. Offsets from the server are code-unit offsets into the exact
// input string, which coincide with rune offsets for the Cyrillic and
// Latin text this pipeline handles.
func (c *Client) Check(ctx context.Context, text string) ([]correct.Match, error) {
	form := url.Values{
		"text":     {text},
		"language": {c.language},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool check returned status %d", resp.StatusCode)
	}

	var parsed checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode languagetool response: %w", err)
	}

	matches := make([]correct.Match, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		replacements := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, r.Value)
		}
		matches = append(matches, correct.Match{
			Category:     m.Rule.Category.ID,
			Offset:       m.Offset,
			Length:       m.Length,
			Replacements: replacements,
		})
	}
	return matches, nil
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// Speller implements correct.SpellChecker on top of a Client. Unknown
// checks the whole word list in one request; the replacements returned for
// each flagged word are cached so the following Candidates calls need no
// further requests.
//
// Speller is safe for concurrent use.
type Speller struct {
	client *Client

	mu         sync.Mutex
	candidates map[string][]string
}

// NewSpeller wraps an existing client.
func NewSpeller(client *Client) *Speller {
	return &Speller{
		client:     client,
		candidates: make(map[string][]string),
	}
}

// Spelling-related LanguageTool rule categories.
func isSpellingCategory(id string) bool {
	return id == "TYPOS"
}

// Unknown returns the subset of words the server flags as misspelled.
// Words are checked as one newline-separated document so a single request
// covers the whole list.
func (s *Speller) Unknown(ctx context.Context, words []string) (map[string]struct{}, error) {
	if len(words) == 0 {
		return map[string]struct{}{}, nil
	}

	doc := strings.Join(words, "\n")
	matches, err := s.client.Check(ctx, doc)
	if err != nil {
		return nil, err
	}

	runes := []rune(doc)
	unknown := make(map[string]struct{})
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		if !isSpellingCategory(m.Category) {
			continue
		}
		if m.Offset < 0 || m.Offset+m.Length > len(runes) {
			continue
		}
		word := string(runes[m.Offset : m.Offset+m.Length])
		unknown[word] = struct{}{}
		s.candidates[word] = m.Replacements
	}
	return unknown, nil
}

// Candidates returns ranked corrections for word, best first. Words seen
// by the preceding Unknown call are answered from cache; anything else
// costs one server round trip.
func (s *Speller) Candidates(ctx context.Context, word string) ([]string, error) {
	s.mu.Lock()
	cached, ok := s.candidates[word]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	matches, err := s.client.Check(ctx, word)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if isSpellingCategory(m.Category) {
			return m.Replacements, nil
		}
	}
	return nil, nil
}
