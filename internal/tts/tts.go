// Package tts synthesises speech into scratch files.
package tts

import (
	"context"
	"fmt"
	"io"
	"time"

	"tutor/internal/metrics"
	"tutor/internal/scratch"
)

// Synthesizer writes encoded audio for text spoken in lang to w.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string, w io.Writer) error
	// Ext is the file extension of the produced audio, e.g. ".mp3".
	Ext() string
}

type Speaker struct {
	synth Synthesizer
	dir   *scratch.Dir
}

func NewSpeaker(synth Synthesizer, dir *scratch.Dir) *Speaker {
	return &Speaker{synth: synth, dir: dir}
}

// Speak returns a closed scratch file holding the audio. The caller must
// Remove it. On error no file is left behind.
func (s *Speaker) Speak(ctx context.Context, text, lang string) (*scratch.File, error) {
	start := time.Now()
	f, err := s.speak(ctx, text, lang)
	metrics.Observe("tts", start, err)
	return f, err
}

func (s *Speaker) speak(ctx context.Context, text, lang string) (*scratch.File, error) {
	if text == "" {
		return nil, fmt.Errorf("nothing to speak")
	}
	f, err := s.dir.Create(s.synth.Ext())
	if err != nil {
		return nil, err
	}
	if err := s.synth.Synthesize(ctx, text, lang, f); err != nil {
		f.Remove()
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	if err := f.Close(); err != nil {
		f.Remove()
		return nil, fmt.Errorf("close audio: %w", err)
	}
	return f, nil
}
