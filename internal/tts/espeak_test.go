package tts

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEspeak(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "espeak-ng")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestEspeak_Synthesize(t *testing.T) {
	bin := fakeEspeak(t, `printf "RIFF:%s:%s:%s" "$1" "$3" "$4"`)

	var buf bytes.Buffer
	err := NewEspeak(bin).Synthesize(context.Background(), "hello there", "en", &buf)
	require.NoError(t, err)
	assert.Equal(t, "RIFF:--stdout:en:hello there", buf.String())
	assert.Equal(t, ".wav", NewEspeak(bin).Ext())
}

func TestEspeak_Failure(t *testing.T) {
	bin := fakeEspeak(t, `echo "unknown voice" >&2; exit 1`)

	var buf bytes.Buffer
	err := NewEspeak(bin).Synthesize(context.Background(), "hello", "xx", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown voice")
}
