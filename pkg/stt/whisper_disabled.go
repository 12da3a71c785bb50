//go:build !whisper

package stt

import "errors"

// NewWhisper is only available in binaries built with -tags whisper, which
// link against libwhisper.
func NewWhisper(modelPath string) (Recognizer, error) {
	return nil, errors.New("whisper support not compiled in (build with -tags whisper)")
}
