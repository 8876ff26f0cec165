// Package remote issues the debounced, cancellable option searches behind
// hybrid controls with a data URL. Each control owns one Fetcher; a new
// search aborts the previous in-flight request so at most one request per
// control is outstanding (last keystroke wins).
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "hybridsel/internal/errors"
	"hybridsel/internal/option"
)

// ResultMsg carries a successful search result back to the owning control.
type ResultMsg struct {
	Name       string
	SearchTerm string
	Raw        []map[string]any
}

// FailedMsg carries a genuine fetch failure. Deliberate cancellations never
// produce a FailedMsg.
type FailedMsg struct {
	Name string
	Err  error
}

// CheckResultMsg carries a validation endpoint response for hybrid inputs.
type CheckResultMsg struct {
	Name        string
	Valid       *bool
	Message     string
	Suggestions []string
}

// Fetcher performs searches against a configured endpoint.
type Fetcher struct {
	baseURL         string
	minSearchLength int
	client          *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewFetcher creates a fetcher for the given endpoint. An empty URL yields a
// fetcher with no source; its commands are nil.
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithMinSearchLength sets the minimum search-term length before a request
// is issued.
func (f *Fetcher) WithMinSearchLength(n int) *Fetcher {
	f.minSearchLength = n
	return f
}

// WithClient overrides the HTTP client, used by tests.
func (f *Fetcher) WithClient(c *http.Client) *Fetcher {
	f.client = c
	return f
}

// HasSource reports whether a data URL is configured.
func (f *Fetcher) HasSource() bool {
	return f != nil && f.baseURL != ""
}

// URL returns the configured endpoint.
func (f *Fetcher) URL() string {
	if f == nil {
		return ""
	}
	return f.baseURL
}

// FetchCmd returns a command performing a search for term. The previous
// in-flight request for this fetcher is cancelled first. A cancelled request
// resolves to no message at all; failures resolve to FailedMsg.
func (f *Fetcher) FetchCmd(name, term string) tea.Cmd {
	if !f.HasSource() {
		return nil
	}
	if len([]rune(term)) < f.minSearchLength {
		return nil
	}
	return f.fetchCmd(name, term)
}

// RefreshCmd re-issues the base query with an empty search term, bypassing
// the minimum-length gate. Sync-group refresh uses it to reload a member's
// full option set.
func (f *Fetcher) RefreshCmd(name string) tea.Cmd {
	if !f.HasSource() {
		return nil
	}
	return f.fetchCmd(name, "")
}

func (f *Fetcher) fetchCmd(name, term string) tea.Cmd {
	ctx := f.restart()
	return func() tea.Msg {
		body, err := f.get(ctx, map[string]string{"q": term, "search": term})
		if err != nil {
			if isCancellation(err) {
				return nil
			}
			return FailedMsg{Name: name, Err: err}
		}
		raw, err := option.Decode(body)
		if err != nil {
			return FailedMsg{Name: name, Err: err}
		}
		return ResultMsg{Name: name, SearchTerm: term, Raw: raw}
	}
}

// CheckCmd returns a command asking the endpoint to validate a value, used by
// hybrid inputs. The response may carry valid/message and suggestions.
func (f *Fetcher) CheckCmd(name, value string) tea.Cmd {
	if !f.HasSource() {
		return nil
	}

	ctx := f.restart()
	return func() tea.Msg {
		body, err := f.get(ctx, map[string]string{"value": value, "q": value})
		if err != nil {
			if isCancellation(err) {
				return nil
			}
			return FailedMsg{Name: name, Err: err}
		}

		var parsed struct {
			Valid       *bool    `json:"valid"`
			Message     string   `json:"message"`
			Suggestions []string `json:"suggestions"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return FailedMsg{Name: name, Err: apperrors.New(apperrors.CodeParseFailed, "parse validation response", err)}
		}
		return CheckResultMsg{
			Name:        name,
			Valid:       parsed.Valid,
			Message:     parsed.Message,
			Suggestions: parsed.Suggestions,
		}
	}
}

// Abort cancels any in-flight request. Called when the control unmounts.
func (f *Fetcher) Abort() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// restart cancels the previous request and arms a fresh context.
func (f *Fetcher) restart() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	return ctx
}

func (f *Fetcher) get(ctx context.Context, params map[string]string) ([]byte, error) {
	target, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeConfigurationError, fmt.Sprintf("invalid data url %q", f.baseURL), err)
	}
	query := target.Query()
	for k, v := range params {
		if v != "" {
			query.Set(k, v)
		}
	}
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeFetchFailed, "build request", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.New(apperrors.CodeFetchFailed,
			fmt.Sprintf("endpoint returned status %d", resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeFetchFailed, "read response body", err)
	}
	return body, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
