package tutor

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"tutor/internal/grammar"
	"tutor/internal/scratch"
	"tutor/internal/tts"
)

type voiceReply struct {
	path    string
	existed bool
}

type recordingReplier struct {
	texts  []string
	voices []voiceReply
}

func (r *recordingReplier) SendText(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingReplier) SendVoice(_ context.Context, path string) error {
	_, err := os.Stat(path)
	r.voices = append(r.voices, voiceReply{path: path, existed: err == nil})
	return nil
}

type stubGrammar struct {
	res   grammar.Result
	calls int
}

func (g *stubGrammar) Check(context.Context, string) grammar.Result {
	g.calls++
	return g.res
}

type translation struct{ text, from, to string }

type stubTranslator struct {
	out   map[string]string // keyed by target language
	err   error
	calls []translation
}

func (s *stubTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	s.calls = append(s.calls, translation{text, from, to})
	if s.err != nil {
		return "", s.err
	}
	return s.out[to], nil
}

type spoken struct{ text, lang string }

type stubSynth struct {
	err   error
	calls []spoken
}

func (s *stubSynth) Ext() string { return ".mp3" }

func (s *stubSynth) Synthesize(_ context.Context, text, lang string, w io.Writer) error {
	s.calls = append(s.calls, spoken{text, lang})
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, "ID3")
	return err
}

var errDown = errors.New("service down")

type fixture struct {
	tmp     string
	dir     *scratch.Dir
	grammar *stubGrammar
	tr      *stubTranslator
	synth   *stubSynth
	router  *Router
	rep     *recordingReplier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmp := t.TempDir()
	dir, err := scratch.New(tmp)
	require.NoError(t, err)

	f := &fixture{
		tmp:     tmp,
		dir:     dir,
		grammar: &stubGrammar{res: grammar.Result{Status: grammar.StatusOK}},
		tr:      &stubTranslator{out: map[string]string{"te": "శుభోదయం", "en": "Good morning"}},
		synth:   &stubSynth{},
		rep:     &recordingReplier{},
	}
	f.router = NewRouter(f.grammar, f.tr, tts.NewSpeaker(f.synth, dir), DefaultLanguages)
	return f
}

func (f *fixture) assertNoScratchFiles(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.tmp)
	require.NoError(t, err)
	require.Empty(t, entries)
}
