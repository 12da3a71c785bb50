// Package tutor routes learner messages to the grammar, translation and
// speech services and assembles the replies.
package tutor

import (
	"context"
	"io"

	"tutor/internal/grammar"
	"tutor/internal/scratch"
	"tutor/internal/script"
)

const (
	MsgGreeting = "👋 Hi — send Telugu or English text or a voice note.\n" +
		"• Telugu -> I'll translate to English.\n" +
		"• English -> I'll check grammar and translate to Telugu.\n" +
		"• I also return a short spoken reply to help pronunciation."

	MsgNoText          = "⚠️ I didn't get any text."
	MsgTranslateFailed = "⚠️ Could not translate Telugu right now."
	MsgNotUnderstood   = "⚠️ Sorry, I couldn't understand the voice."
	MsgVoiceError      = "⚠️ Error processing voice."

	grammarHeader = "🔍 Grammar suggestions:\n"
)

// Replier sends answers back to the chat a message came from.
type Replier interface {
	SendText(ctx context.Context, text string) error
	// SendVoice uploads the audio file at path as a voice reply.
	SendVoice(ctx context.Context, path string) error
}

// VoiceSource is an inbound voice attachment.
type VoiceSource interface {
	Download(ctx context.Context, w io.Writer) error
}

type GrammarChecker interface {
	Check(ctx context.Context, text string) grammar.Result
}

type Speaker interface {
	Speak(ctx context.Context, text, lang string) (*scratch.File, error)
}

// Language describes one side of the tutoring pair.
type Language struct {
	Name   string // shown to users, e.g. "Telugu"
	Code   string // ISO 639-1, used for translation and speech synthesis
	Locale string // BCP-47, used for speech recognition
}

type Languages struct {
	Source  Language
	Default Language
	Script  script.Block
}

var DefaultLanguages = Languages{
	Source:  Language{Name: "Telugu", Code: "te", Locale: "te-IN"},
	Default: Language{Name: "English", Code: "en", Locale: "en-US"},
	Script:  script.Telugu,
}
