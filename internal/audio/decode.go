package audio

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Decode converts an encoded payload to PCM at sampleRate.
func Decode(data []byte, format string, sampleRate int) (*Clip, error) {
	var (
		stream io.Reader
		err    error
	)
	src := bytes.NewReader(data)

	switch strings.ToLower(format) {
	case "wav", "wave":
		stream, err = wav.DecodeWithSampleRate(sampleRate, src)
	case "mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", format, err)
	}
	return &Clip{PCM: pcm, SampleRate: sampleRate}, nil
}
