package tutor

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"tutor/internal/grammar"
	"tutor/internal/translate"
)

// Router decides which services a piece of text goes through. It holds no
// per-request state and is safe for concurrent use.
type Router struct {
	grammar    GrammarChecker
	translator translate.Translator
	speaker    Speaker
	langs      Languages
}

func NewRouter(g GrammarChecker, tr translate.Translator, sp Speaker, langs Languages) *Router {
	return &Router{grammar: g, translator: tr, speaker: sp, langs: langs}
}

func (r *Router) Greet(ctx context.Context, rep Replier) {
	if err := rep.SendText(ctx, MsgGreeting); err != nil {
		log.Error("Failed to send greeting", "err", err)
	}
}

// Process answers one piece of learner text. Failures are reported to the
// user and logged, never returned.
func (r *Router) Process(ctx context.Context, text string, rep Replier) {
	text = strings.TrimSpace(text)
	if text == "" {
		r.send(ctx, rep, MsgNoText)
		return
	}

	if r.langs.Script.Contains(text) {
		if err := r.explainSource(ctx, text, rep); err != nil {
			log.Error("Source translation failed", "err", err)
			r.send(ctx, rep, MsgTranslateFailed)
		}
		return
	}
	r.coachDefault(ctx, text, rep)
}

// explainSource translates source-script text into the default language and
// speaks the translation. Any failure aborts the whole branch.
func (r *Router) explainSource(ctx context.Context, text string, rep Replier) error {
	src, dst := r.langs.Source, r.langs.Default

	translated, err := r.translator.Translate(ctx, text, src.Code, dst.Code)
	if err != nil {
		return fmt.Errorf("translate %s->%s: %w", src.Code, dst.Code, err)
	}
	// Nothing is sent until speech exists; a failure here leaves the user
	// with only the generic notice.
	f, err := r.speaker.Speak(ctx, translated, dst.Code)
	if err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	defer f.Remove()

	msg := fmt.Sprintf("🗣 %s: %s\n➡️ %s: %s", src.Name, text, dst.Name, translated)
	if err := rep.SendText(ctx, msg); err != nil {
		return fmt.Errorf("send translation: %w", err)
	}
	if err := rep.SendVoice(ctx, f.Name()); err != nil {
		return fmt.Errorf("send voice: %w", err)
	}
	return nil
}

// coachDefault checks grammar and translates into the source language.
// Each step fails on its own: a failed grammar check or translation never
// stops the other, nor the pronunciation reply.
func (r *Router) coachDefault(ctx context.Context, text string, rep Replier) {
	src, dst := r.langs.Default, r.langs.Source

	lines := []string{grammarBlock(r.grammar.Check(ctx, text))}

	translated, err := r.translator.Translate(ctx, text, src.Code, dst.Code)
	if err != nil {
		log.Warn("Translation omitted", "from", src.Code, "to", dst.Code, "err", err)
	} else if translated != "" {
		lines = append(lines, fmt.Sprintf("➡️ %s: %s", dst.Name, translated))
	}

	r.send(ctx, rep, strings.Join(lines, "\n\n"))

	if err := r.speak(ctx, rep, text, src.Code); err != nil {
		log.Error("Pronunciation reply failed", "err", err)
	}
}

func (r *Router) speak(ctx context.Context, rep Replier, text, lang string) error {
	f, err := r.speaker.Speak(ctx, text, lang)
	if err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	defer f.Remove()

	if err := rep.SendVoice(ctx, f.Name()); err != nil {
		return fmt.Errorf("send voice: %w", err)
	}
	return nil
}

func (r *Router) send(ctx context.Context, rep Replier, text string) {
	if err := rep.SendText(ctx, text); err != nil {
		log.Error("Failed to send reply", "err", err)
	}
}

func grammarBlock(res grammar.Result) string {
	if res.Status == grammar.StatusOK && len(res.Issues) > 0 {
		return grammarHeader + res.Summary()
	}
	return res.Summary()
}
