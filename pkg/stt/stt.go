// Package stt turns 16 kHz mono PCM into text.
package stt

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
)

var ErrNoSpeech = errors.New("no speech recognized")

// Recognizer transcribes pcm (mono, 16 kHz, float32 in [-1, 1]) spoken in
// the given BCP-47 locale, e.g. "te-IN". Implementations return ErrNoSpeech
// when nothing intelligible was heard.
type Recognizer interface {
	Transcribe(ctx context.Context, pcm []float32, locale string) (string, error)
	Close() error
}

// Recognize makes one attempt per locale, in order, moving to the next
// locale only when the previous attempt failed. It reports false when every
// attempt failed.
func Recognize(ctx context.Context, rec Recognizer, pcm []float32, locales ...string) (string, bool) {
	for _, loc := range locales {
		text, err := rec.Transcribe(ctx, pcm, loc)
		if err != nil {
			log.Debug("Transcription attempt failed", "locale", loc, "err", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", false
		}
		return text, true
	}
	return "", false
}

// languageOf strips the region from a locale: "te-IN" -> "te".
func languageOf(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(lang)
}
