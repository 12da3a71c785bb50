package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type replier struct {
	api     API
	chatID  int64
	replyTo int
}

func (r *replier) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ReplyToMessageID = r.replyTo
	_, err := r.api.Send(msg)
	return err
}

// SendVoice sends OGG and MP3 files as voice notes. Other formats are not
// accepted as voice notes and go out as audio.
func (r *replier) SendVoice(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file := tgbotapi.FilePath(path)

	var c tgbotapi.Chattable
	switch filepath.Ext(path) {
	case ".ogg", ".oga", ".mp3":
		v := tgbotapi.NewVoice(r.chatID, file)
		v.ReplyToMessageID = r.replyTo
		c = v
	default:
		a := tgbotapi.NewAudio(r.chatID, file)
		a.ReplyToMessageID = r.replyTo
		c = a
	}
	_, err := r.api.Send(c)
	return err
}

type voiceFile struct {
	api    API
	client *http.Client
	fileID string
}

func (v *voiceFile) Download(ctx context.Context, w io.Writer) error {
	link, err := v.api.GetFileDirectURL(v.fileID)
	if err != nil {
		return fmt.Errorf("get file url: %w", withoutURL(err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return errors.New("download file: bad file url")
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	return nil
}

// withoutURL strips the request URL from transport errors. Bot API URLs
// carry the bot token.
func withoutURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
