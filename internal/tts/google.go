package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sony/gobreaker"

	"tutor/internal/breaker"
)

const (
	DefaultGoogleURL = "https://translate.google.com/translate_tts"

	// The endpoint rejects longer inputs.
	maxChunkRunes = 200
)

// Google speaks through the Translate TTS endpoint, which returns MP3.
// Long text is split into chunks whose MP3 streams are concatenated.
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
		cb:     breaker.New("google-tts", breaker.DefaultSettings),
	}
}

func (g *Google) Ext() string { return ".mp3" }

func (g *Google) Synthesize(ctx context.Context, text, lang string, w io.Writer) error {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return fmt.Errorf("nothing to speak")
	}
	for i, c := range chunks {
		_, err := breaker.Do(g.cb, func() (struct{}, error) {
			return struct{}{}, g.fetch(ctx, c, lang, i, len(chunks), w)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Google) fetch(ctx context.Context, text, lang string, idx, total int, w io.Writer) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts status %d", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("write tts audio: %w", err)
	}
	return nil
}

// splitText cuts text into pieces of at most limit runes, preferring to break
// on whitespace. Words longer than limit are hard-split.
func splitText(text string, limit int) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		s := strings.TrimSpace(string(cur))
		if s != "" {
			out = append(out, s)
		}
		cur = cur[:0]
	}
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		for len(wr) > limit {
			flush()
			out = append(out, string(wr[:limit]))
			wr = wr[limit:]
		}
		if len(cur) > 0 && len(cur)+1+len(wr) > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, wr...)
	}
	flush()
	return out
}
