package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"tutor/internal/breaker"
	"tutor/internal/metrics"
)

const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// Google uses the public web translation endpoint. Its response is a nested
// array whose first element lists [translated, original, ...] per sentence.
type Google struct {
	url    string
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

func NewGoogle(endpoint string, client *http.Client) *Google {
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Google{
		url:    endpoint,
		client: client,
		cb:     breaker.New("google-translate", breaker.DefaultSettings),
	}
}

func (g *Google) Translate(ctx context.Context, text, from, to string) (string, error) {
	start := time.Now()
	out, err := breaker.Do(g.cb, func() (string, error) {
		return g.translate(ctx, text, from, to)
	})
	metrics.Observe("translate", start, err)
	return out, err
}

func (g *Google) translate(ctx context.Context, text, from, to string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", from)
	q.Set("tl", to)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid translate json")
	}

	var sb strings.Builder
	for _, part := range gjson.GetBytes(body, "0.#.0").Array() {
		sb.WriteString(part.String())
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmpty
	}
	return out, nil
}
