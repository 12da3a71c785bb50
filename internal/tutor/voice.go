package tutor

import (
	"context"
	"fmt"
	log "log/slog"

	"tutor/internal/scratch"
	"tutor/pkg/audioconv"
	"tutor/pkg/stt"
)

type VoicePipeline struct {
	router *Router
	rec    stt.Recognizer
	dir    *scratch.Dir
	langs  Languages
	opts   audioconv.Options
}

func NewVoicePipeline(router *Router, rec stt.Recognizer, dir *scratch.Dir, langs Languages, opts audioconv.Options) *VoicePipeline {
	return &VoicePipeline{router: router, rec: rec, dir: dir, langs: langs, opts: opts}
}

// Handle transcribes a voice note and hands the text to the router. Both
// scratch files are removed on every path out of Handle.
func (p *VoicePipeline) Handle(ctx context.Context, src VoiceSource, rep Replier) {
	pcm, err := p.load(ctx, src)
	if err != nil {
		log.Error("Voice ingestion failed", "err", err)
		p.router.send(ctx, rep, MsgVoiceError)
		return
	}

	text, ok := stt.Recognize(ctx, p.rec, pcm, p.langs.Source.Locale, p.langs.Default.Locale)
	if !ok {
		p.router.send(ctx, rep, MsgNotUnderstood)
		return
	}
	log.Info("Recognized", "text", text)

	p.router.send(ctx, rep, "🎙️ Recognized: "+text)
	p.router.Process(ctx, text, rep)
}

// load downloads the attachment, transcodes it to a 16 kHz WAV and reads
// the WAV back as PCM.
func (p *VoicePipeline) load(ctx context.Context, src VoiceSource) ([]float32, error) {
	// unknown extension: the container is sniffed from its magic bytes
	raw, err := p.dir.Create(".voice")
	if err != nil {
		return nil, err
	}
	defer raw.Remove()

	wav, err := p.dir.Create(".wav")
	if err != nil {
		return nil, err
	}
	defer wav.Remove()

	if err := src.Download(ctx, raw); err != nil {
		return nil, fmt.Errorf("download voice: %w", err)
	}
	if err := raw.Close(); err != nil {
		return nil, fmt.Errorf("close voice: %w", err)
	}

	decoded, err := audioconv.DecodeFile(ctx, raw.Name(), p.opts)
	if err != nil {
		return nil, fmt.Errorf("decode voice: %w", err)
	}
	if err := audioconv.WriteWAV16k(wav, decoded); err != nil {
		return nil, fmt.Errorf("transcode voice: %w", err)
	}
	if err := wav.Close(); err != nil {
		return nil, fmt.Errorf("close wav: %w", err)
	}

	return audioconv.DecodeFile(ctx, wav.Name(), p.opts)
}
