package telegram

import (
	"os"

	"tutor/pkg/audioconv"
)

func createWAV(path string) ([]byte, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	pcm := make([]float32, audioconv.SampleRate/5)
	for i := range pcm {
		pcm[i] = float32(i%64) / 128
	}
	if err := audioconv.WriteWAV16k(f, pcm); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
