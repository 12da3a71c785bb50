// Package telegram binds the tutor to the Telegram Bot API long-poll loop.
package telegram

import (
	"context"
	log "log/slog"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tutor/internal/metrics"
	"tutor/internal/tutor"
)

// API is the part of the Bot API the handlers call.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Updates interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Config struct {
	// Long-poll timeout in seconds.
	PollTimeout int
}

type Bot struct {
	api     API
	updates Updates
	client  *http.Client
	router  *tutor.Router
	voice   *tutor.VoicePipeline
	cfg     Config

	queues chatQueues
	wg     sync.WaitGroup
}

func New(bot *tgbotapi.BotAPI, client *http.Client, router *tutor.Router, voice *tutor.VoicePipeline, cfg Config) *Bot {
	return newBot(bot, bot, client, router, voice, cfg)
}

func newBot(api API, updates Updates, client *http.Client, router *tutor.Router, voice *tutor.VoicePipeline, cfg Config) *Bot {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 60
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Bot{
		api:     api,
		updates: updates,
		client:  client,
		router:  router,
		voice:   voice,
		cfg:     cfg,
		queues:  chatQueues{m: make(map[int64][]func())},
	}
}

// Run polls for updates until ctx is cancelled, then waits for the updates
// already being handled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := b.updates.GetUpdatesChan(u)

	// in-flight replies are allowed to finish after shutdown starts
	handlerCtx := context.WithoutCancel(ctx)

	log.Info("Polling for updates")
	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			b.wg.Wait()
			return nil
		case up, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.dispatch(handlerCtx, up)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, up tgbotapi.Update) {
	msg := up.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	var (
		kind   string
		handle func(context.Context, tutor.Replier)
	)
	switch {
	case msg.IsCommand():
		switch msg.Command() {
		case "start", "help":
			kind = "command"
			handle = b.router.Greet
		default:
			return
		}
	case msg.Voice != nil:
		kind = "voice"
		src := &voiceFile{api: b.api, client: b.client, fileID: msg.Voice.FileID}
		handle = func(ctx context.Context, rep tutor.Replier) {
			b.voice.Handle(ctx, src, rep)
		}
	case msg.Text != "":
		kind = "text"
		text := msg.Text
		handle = func(ctx context.Context, rep tutor.Replier) {
			b.router.Process(ctx, text, rep)
		}
	default:
		return
	}

	metrics.UpdatesTotal.WithLabelValues(kind).Inc()
	log.Info("Update", "chat", msg.Chat.ID, "message", msg.MessageID, "kind", kind)

	rep := &replier{api: b.api, chatID: msg.Chat.ID, replyTo: msg.MessageID}
	chatID := msg.Chat.ID

	b.wg.Add(1)
	job := func() {
		defer b.wg.Done()
		handle(ctx, rep)
	}
	if b.queues.push(chatID, job) {
		go b.drain(chatID)
	}
}

// drain runs the chat's queued updates in arrival order until the queue is
// empty.
func (b *Bot) drain(chatID int64) {
	for {
		job, ok := b.queues.next(chatID)
		if !ok {
			return
		}
		job()
	}
}

// chatQueues holds the pending updates of every chat that has a worker
// running. A chat with an entry, even an empty one, has exactly one worker.
type chatQueues struct {
	mu sync.Mutex
	m  map[int64][]func()
}

// push appends job to the chat's queue and reports whether the caller must
// start a worker for it.
func (q *chatQueues) push(chatID int64, job func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending, running := q.m[chatID]
	q.m[chatID] = append(pending, job)
	return !running
}

// next pops the chat's oldest job. When none is left the entry is dropped and
// the worker must exit.
func (q *chatQueues) next(chatID int64) (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.m[chatID]
	if len(pending) == 0 {
		delete(q.m, chatID)
		return nil, false
	}
	q.m[chatID] = pending[1:]
	return pending[0], true
}
