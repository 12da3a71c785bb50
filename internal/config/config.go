// Package config assembles the bot configuration from defaults, an optional
// .env file, the environment and command line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"
)

type Config struct {
	Token string

	ScratchDir string
	LogLevel   string
	Proxy      string

	LanguageToolURL string
	GrammarTimeout  time.Duration

	Translator  string
	OpenAIKey   string
	OpenAIModel string

	STT             string
	GoogleAPIKey    string
	WhisperModel    string
	MaxVoiceSeconds int

	TTS        string
	EspeakPath string

	RedisAddr string
	CacheTTL  time.Duration

	MetricsAddr string
}

var (
	translators  = []string{"google", "openai"}
	recognizers  = []string{"google", "whisper"}
	synthesizers = []string{"google", "espeak"}
)

type setting struct {
	env   string
	flag  string
	short string
	def   string
	usage string
	dst   *string
}

// Load parses args (without the program name). lookupEnv is os.LookupEnv in
// production.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	var grammarTimeout, cacheTTL, maxVoice string

	settings := []setting{
		{"BOT_TOKEN", "token", "t", "", "Telegram bot token", &cfg.Token},
		{"TUTOR_SCRATCH_DIR", "scratch", "", os.TempDir(), "Directory for temporary audio files", &cfg.ScratchDir},
		{"LOG_LEVEL", "log", "l", "info", "Log level", &cfg.LogLevel},
		{"TUTOR_PROXY", "proxy", "p", "", "SOCKS5 proxy address for outbound HTTP", &cfg.Proxy},
		{"LANGUAGETOOL_URL", "languagetool", "", "https://api.languagetool.org/v2/check", "LanguageTool check endpoint", &cfg.LanguageToolURL},
		{"GRAMMAR_TIMEOUT", "grammar-timeout", "", "5s", "Timeout of one grammar check", &grammarTimeout},
		{"TUTOR_TRANSLATOR", "translator", "", "google", "Translation backend (google|openai)", &cfg.Translator},
		{"OPENAI_API_KEY", "openai-key", "", "", "OpenAI API key", &cfg.OpenAIKey},
		{"OPENAI_MODEL", "openai-model", "", "gpt-5-nano", "OpenAI chat model used for translation", &cfg.OpenAIModel},
		{"TUTOR_STT", "stt", "", "google", "Speech recognition backend (google|whisper)", &cfg.STT},
		{"GOOGLE_API_KEY", "google-key", "", "", "Google Cloud API key (default: application credentials)", &cfg.GoogleAPIKey},
		{"WHISPER_MODEL", "whisper-model", "", "models/ggml-base.bin", "whisper.cpp model path", &cfg.WhisperModel},
		{"TUTOR_MAX_VOICE_SECONDS", "max-voice", "", "60", "Seconds of a voice note that are transcribed", &maxVoice},
		{"TUTOR_TTS", "tts", "", "google", "Speech synthesis backend (google|espeak)", &cfg.TTS},
		{"ESPEAK_PATH", "espeak", "", "espeak-ng", "espeak-ng executable", &cfg.EspeakPath},
		{"REDIS_ADDR", "redis", "", "", "Redis address for the translation cache (empty disables it)", &cfg.RedisAddr},
		{"TRANSLATION_CACHE_TTL", "cache-ttl", "", "168h", "Lifetime of cached translations", &cacheTTL},
		{"METRICS_ADDR", "metrics", "", "", "Address to serve Prometheus metrics on (empty disables it)", &cfg.MetricsAddr},
	}

	fs := cli.NewFlagSet("tutor-bot", cli.ContinueOnError)
	envFile := fs.StringP("env", "e", ".env", "Env file path")
	flagVals := make([]*string, len(settings))
	for i, s := range settings {
		flagVals[i] = fs.StringP(s.flag, s.short, s.def, s.usage)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	dotenv, err := godotenv.Read(*envFile)
	if err != nil && !(errors.Is(err, os.ErrNotExist) && !fs.Changed("env")) {
		return nil, fmt.Errorf("read env file %s: %w", *envFile, err)
	}

	for i, s := range settings {
		switch {
		case fs.Changed(s.flag):
			*s.dst = *flagVals[i]
		case envSet(lookupEnv, s.env):
			*s.dst, _ = lookupEnv(s.env)
		case dotenv[s.env] != "":
			*s.dst = dotenv[s.env]
		default:
			*s.dst = s.def
		}
		*s.dst = strings.TrimSpace(*s.dst)
	}

	if cfg.GrammarTimeout, err = time.ParseDuration(grammarTimeout); err != nil {
		return nil, fmt.Errorf("grammar timeout: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(cacheTTL); err != nil {
		return nil, fmt.Errorf("cache ttl: %w", err)
	}
	if _, err := fmt.Sscanf(maxVoice, "%d", &cfg.MaxVoiceSeconds); err != nil {
		return nil, fmt.Errorf("max voice seconds %q: %w", maxVoice, err)
	}

	return cfg, cfg.Validate()
}

func envSet(lookupEnv func(string) (string, bool), key string) bool {
	v, ok := lookupEnv(key)
	return ok && strings.TrimSpace(v) != ""
}

func (c *Config) Validate() error {
	var errs []error
	if c.Token == "" {
		errs = append(errs, errors.New("BOT_TOKEN not set"))
	}
	if !oneOf(c.Translator, translators) {
		errs = append(errs, fmt.Errorf("unknown translator %q (want one of %v)", c.Translator, translators))
	}
	if c.Translator == "openai" && c.OpenAIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY not set but the openai translator is selected"))
	}
	if !oneOf(c.STT, recognizers) {
		errs = append(errs, fmt.Errorf("unknown stt backend %q (want one of %v)", c.STT, recognizers))
	}
	if !oneOf(c.TTS, synthesizers) {
		errs = append(errs, fmt.Errorf("unknown tts backend %q (want one of %v)", c.TTS, synthesizers))
	}
	if c.GrammarTimeout <= 0 {
		errs = append(errs, errors.New("grammar timeout must be positive"))
	}
	if c.MaxVoiceSeconds < 0 {
		errs = append(errs, errors.New("max voice seconds must not be negative"))
	}
	return errors.Join(errs...)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
