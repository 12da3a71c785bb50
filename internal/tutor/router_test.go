package tutor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor/internal/grammar"
)

func TestProcess_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		f := newFixture(t)
		f.router.Process(context.Background(), in, f.rep)

		assert.Equal(t, []string{MsgNoText}, f.rep.texts)
		assert.Empty(t, f.rep.voices)
		assert.Empty(t, f.tr.calls)
		assert.Zero(t, f.grammar.calls)
	}
}

func TestProcess_Telugu(t *testing.T) {
	f := newFixture(t)
	f.router.Process(context.Background(), "  శుభోదయం ", f.rep)

	require.Len(t, f.rep.texts, 1)
	assert.Equal(t, "🗣 Telugu: శుభోదయం\n➡️ English: Good morning", f.rep.texts[0])
	assert.Equal(t, []translation{{"శుభోదయం", "te", "en"}}, f.tr.calls)
	assert.Equal(t, []spoken{{"Good morning", "en"}}, f.synth.calls)

	require.Len(t, f.rep.voices, 1)
	assert.True(t, f.rep.voices[0].existed)
	assert.Zero(t, f.grammar.calls)
	f.assertNoScratchFiles(t)
}

func TestProcess_TeluguTranslationFails(t *testing.T) {
	f := newFixture(t)
	f.tr.err = errDown
	f.router.Process(context.Background(), "శుభోదయం", f.rep)

	assert.Equal(t, []string{MsgTranslateFailed}, f.rep.texts)
	assert.Empty(t, f.rep.voices)
	assert.Empty(t, f.synth.calls)
}

func TestProcess_TeluguSpeechFailsHidesTranslation(t *testing.T) {
	f := newFixture(t)
	f.synth.err = errDown
	f.router.Process(context.Background(), "శుభోదయం", f.rep)

	assert.Equal(t, []string{MsgTranslateFailed}, f.rep.texts)
	assert.Empty(t, f.rep.voices)
	f.assertNoScratchFiles(t)
}

func TestProcess_English(t *testing.T) {
	f := newFixture(t)
	f.router.Process(context.Background(), "Good morning", f.rep)

	require.Len(t, f.rep.texts, 1)
	assert.Equal(t, grammar.MsgLooksGood+"\n\n➡️ Telugu: శుభోదయం", f.rep.texts[0])
	assert.Equal(t, []translation{{"Good morning", "en", "te"}}, f.tr.calls)
	assert.Equal(t, []spoken{{"Good morning", "en"}}, f.synth.calls)

	require.Len(t, f.rep.voices, 1)
	assert.True(t, f.rep.voices[0].existed)
	f.assertNoScratchFiles(t)
}

func TestProcess_EnglishWithSuggestions(t *testing.T) {
	f := newFixture(t)
	f.grammar.res = grammar.Result{Status: grammar.StatusOK, Issues: []grammar.Issue{
		{Message: "Possible spelling mistake found.", Replacement: "morning"},
	}}
	f.router.Process(context.Background(), "Good mornin", f.rep)

	require.Len(t, f.rep.texts, 1)
	reply := f.rep.texts[0]
	assert.True(t, strings.HasPrefix(reply, "🔍 Grammar suggestions:\n❌ Possible spelling mistake found. → ✅ morning"))
	assert.True(t, strings.HasSuffix(reply, "\n\n➡️ Telugu: శుభోదయం"))
}

func TestProcess_EnglishTranslationFailsStillSpeaks(t *testing.T) {
	f := newFixture(t)
	f.tr.err = errDown
	f.router.Process(context.Background(), "Good morning", f.rep)

	assert.Equal(t, []string{grammar.MsgLooksGood}, f.rep.texts)
	require.Len(t, f.rep.voices, 1)
	assert.Equal(t, []spoken{{"Good morning", "en"}}, f.synth.calls)
	f.assertNoScratchFiles(t)
}

func TestProcess_EnglishGrammarUnavailableIsIsolated(t *testing.T) {
	f := newFixture(t)
	f.grammar.res = grammar.Result{Status: grammar.StatusUnavailable}
	f.router.Process(context.Background(), "Good morning", f.rep)

	assert.Equal(t, []string{grammar.MsgUnavailable + "\n\n➡️ Telugu: శుభోదయం"}, f.rep.texts)
	assert.Len(t, f.rep.voices, 1)
	assert.Len(t, f.tr.calls, 1)
}

func TestProcess_EnglishSpeechFails(t *testing.T) {
	f := newFixture(t)
	f.synth.err = errDown
	f.router.Process(context.Background(), "Good morning", f.rep)

	assert.Len(t, f.rep.texts, 1)
	assert.Empty(t, f.rep.voices)
	f.assertNoScratchFiles(t)
}

func TestGreet(t *testing.T) {
	f := newFixture(t)
	f.router.Greet(context.Background(), f.rep)
	assert.Equal(t, []string{MsgGreeting}, f.rep.texts)
}
