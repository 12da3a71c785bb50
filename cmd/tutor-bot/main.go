package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/redis/go-redis/v9"
	cli "github.com/spf13/pflag"

	"tutor/internal/config"
	"tutor/internal/grammar"
	"tutor/internal/metrics"
	"tutor/internal/proxy"
	"tutor/internal/scratch"
	"tutor/internal/telegram"
	"tutor/internal/translate"
	"tutor/internal/tts"
	"tutor/internal/tutor"
	"tutor/pkg/audioconv"
	"tutor/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if errors.Is(err, cli.ErrHelp) {
		return
	}

	level := log.LevelInfo
	if cfg != nil {
		if l, ok := logLevelMap[cfg.LogLevel]; ok {
			level = l
		}
	}
	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: level,
	})))

	if err != nil {
		log.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	log.Info("Booting up")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error("Bot stopped", "err", err)
		os.Exit(1)
	}
	log.Info("Shut down")
}

func run(ctx context.Context, cfg *config.Config) error {
	httpClient, err := proxy.NewHTTPClient(cfg.Proxy, 0)
	if err != nil {
		return fmt.Errorf("dial socks proxy %s: %w", cfg.Proxy, err)
	}
	log.Debug("Loaded http client", "proxy", cfg.Proxy)

	dir, err := scratch.New(cfg.ScratchDir)
	if err != nil {
		return err
	}

	translator, err := newTranslator(ctx, cfg, httpClient)
	if err != nil {
		return err
	}
	log.Debug("Loaded translator", "backend", cfg.Translator)

	rec, err := newRecognizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer rec.Close()
	log.Debug("Loaded recognizer", "backend", cfg.STT)

	var synth tts.Synthesizer
	switch cfg.TTS {
	case "espeak":
		synth = tts.NewEspeak(cfg.EspeakPath)
	default:
		synth = tts.NewGoogle("", httpClient)
	}

	checker := grammar.NewChecker(grammar.Config{
		URL:     cfg.LanguageToolURL,
		Timeout: cfg.GrammarTimeout,
		Client:  httpClient,
	})

	router := tutor.NewRouter(checker, translator, tts.NewSpeaker(synth, dir), tutor.DefaultLanguages)
	voice := tutor.NewVoicePipeline(router, rec, dir, tutor.DefaultLanguages, audioconv.Options{
		MaxSamples: cfg.MaxVoiceSeconds * audioconv.SampleRate,
	})

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return fmt.Errorf("telegram login: %w", err)
	}
	log.Info("Authorized", "bot", api.Self.UserName)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Error("Metrics server failed", "err", err)
			}
		}()
	}

	log.Info("Boot up - successful")
	return telegram.New(api, httpClient, router, voice, telegram.Config{}).Run(ctx)
}

func newTranslator(ctx context.Context, cfg *config.Config, httpClient *http.Client) (translate.Translator, error) {
	var tr translate.Translator
	switch cfg.Translator {
	case "openai":
		client := openai.NewClient(
			option.WithAPIKey(cfg.OpenAIKey),
			option.WithHTTPClient(httpClient),
		)
		tr = translate.NewOpenAI(client, cfg.OpenAIModel)
	default:
		tr = translate.NewGoogle("", httpClient)
	}

	if cfg.RedisAddr == "" {
		return tr, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, translation cache disabled", "addr", cfg.RedisAddr, "err", err)
		_ = rdb.Close()
		return tr, nil
	}
	log.Debug("Loaded translation cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	return translate.NewCached(tr, translate.NewRedisStore(rdb), cfg.CacheTTL), nil
}

func newRecognizer(ctx context.Context, cfg *config.Config) (stt.Recognizer, error) {
	switch cfg.STT {
	case "whisper":
		rec, err := stt.NewWhisper(cfg.WhisperModel)
		if err != nil {
			return nil, fmt.Errorf("failed to init whisper: %w", err)
		}
		return rec, nil
	default:
		rec, err := stt.NewGoogle(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}
