// Package grammar checks English text against a LanguageTool server.
package grammar

import (
	"context"
	"fmt"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"tutor/internal/breaker"
	"tutor/internal/metrics"
)

const (
	DefaultURL     = "https://api.languagetool.org/v2/check"
	DefaultTimeout = 5 * time.Second

	maxIssues = 3

	MsgLooksGood   = "✅ Your English looks good!"
	MsgUnavailable = "⚠️ Grammar check not available right now."
)

type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
)

type Issue struct {
	Message     string
	Replacement string
}

func (i Issue) String() string {
	return fmt.Sprintf("❌ %s → ✅ %s", i.Message, i.Replacement)
}

// Result is what a check produced. A Result with StatusUnavailable carries no
// issues.
type Result struct {
	Status Status
	Issues []Issue
}

func (r Result) Summary() string {
	if r.Status == StatusUnavailable {
		return MsgUnavailable
	}
	if len(r.Issues) == 0 {
		return MsgLooksGood
	}
	lines := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		lines[i] = is.String()
	}
	return strings.Join(lines, "\n")
}

type Config struct {
	URL      string
	Language string
	Timeout  time.Duration
	Client   *http.Client
}

type Checker struct {
	url      string
	language string
	timeout  time.Duration
	client   *http.Client
	cb       *gobreaker.CircuitBreaker
}

func NewChecker(cfg Config) *Checker {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &Checker{
		url:      cfg.URL,
		language: cfg.Language,
		timeout:  cfg.Timeout,
		client:   cfg.Client,
		cb:       breaker.New("languagetool", breaker.DefaultSettings),
	}
}

// Check never fails: any transport or decoding problem yields a Result with
// StatusUnavailable.
func (c *Checker) Check(ctx context.Context, text string) Result {
	start := time.Now()
	issues, err := breaker.Do(c.cb, func() ([]Issue, error) {
		return c.check(ctx, text)
	})
	metrics.Observe("grammar", start, err)
	if err != nil {
		log.Warn("Grammar check failed", "err", err, "breaker_open", breaker.Open(err))
		return Result{Status: StatusUnavailable}
	}
	return Result{Status: StatusOK, Issues: issues}
}

func (c *Checker) check(ctx context.Context, text string) ([]Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read languagetool response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool status %d", resp.StatusCode)
	}
	return parseMatches(body)
}

func parseMatches(body []byte) ([]Issue, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid languagetool json")
	}
	matches := gjson.GetBytes(body, "matches").Array()
	if len(matches) > maxIssues {
		matches = matches[:maxIssues]
	}

	var issues []Issue
	for _, m := range matches {
		repl := m.Get("replacements.0.value")
		if !repl.Exists() {
			continue
		}
		issues = append(issues, Issue{
			Message:     m.Get("message").String(),
			Replacement: repl.String(),
		})
	}
	return issues, nil
}
