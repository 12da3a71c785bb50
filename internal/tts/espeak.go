package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Espeak runs the espeak-ng command line synthesiser and produces WAV.
type Espeak struct {
	ExecPath string
}

func NewEspeak(path string) *Espeak {
	if path == "" {
		path = "espeak-ng"
	}
	return &Espeak{ExecPath: path}
}

func (e *Espeak) Ext() string { return ".wav" }

func (e *Espeak) Synthesize(ctx context.Context, text, lang string, w io.Writer) error {
	if text == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, e.ExecPath, "--stdout", "-v", lang, text)
	var stderr bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
