package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"
)

const pollInterval = 50 * time.Millisecond

// Device is the oto-backed Output. The underlying oto context can only be
// created once per process, so it is built lazily on the first Resume.
type Device struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	volume     float64
	logger     zerolog.Logger
}

// NewDevice returns an output that will open at sampleRate on first use.
// A volume of 0 mutes playback without skipping it; values outside 0-1 play
// at full volume.
func NewDevice(sampleRate int, volume float64, logger zerolog.Logger) *Device {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if volume < 0 || volume > 1 {
		volume = 1
	}
	return &Device{
		sampleRate: sampleRate,
		volume:     volume,
		logger:     logger.With().Str("component", "audio").Logger(),
	}
}

// SampleRate returns the output rate.
func (d *Device) SampleRate() int { return d.sampleRate }

// Resume lazily creates the oto context, then resumes it.
func (d *Device) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   d.sampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return fmt.Errorf("open audio output: %w", err)
		}
		<-ready
		d.ctx = ctx
		d.logger.Info().Int("sampleRate", d.sampleRate).Msg("Audio output opened")
		return nil
	}

	if err := d.ctx.Err(); err != nil {
		return fmt.Errorf("audio output failed: %w", err)
	}
	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("resume audio output: %w", err)
	}
	return nil
}

// Suspend pauses the whole output.
func (d *Device) Suspend() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx == nil {
		return nil
	}
	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspend audio output: %w", err)
	}
	return nil
}

// Play starts a clip on the output.
func (d *Device) Play(clip *Clip) (Handle, error) {
	d.mu.Lock()
	ctx := d.ctx
	d.mu.Unlock()

	if ctx == nil {
		return nil, ErrNotReady
	}
	if clip.SampleRate != d.sampleRate {
		return nil, fmt.Errorf("%w: %d != %d", ErrSampleRate, clip.SampleRate, d.sampleRate)
	}

	p := ctx.NewPlayer(bytes.NewReader(clip.PCM))
	p.SetVolume(d.volume)
	p.Play()

	d.logger.Debug().Dur("duration", clip.Duration()).Msg("Playback started")
	return newPlayback(p, pollInterval), nil
}

// player is the subset of *oto.Player a playback watches.
type player interface {
	IsPlaying() bool
	Pause()
	Close() error
}

type playback struct {
	p        player
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func newPlayback(p player, every time.Duration) *playback {
	pb := &playback{
		p:    p,
		done: make(chan struct{}),
		stop: make(chan struct{}),
	}
	go pb.watch(every)
	return pb
}

func (pb *playback) watch(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	defer close(pb.done)

	for {
		select {
		case <-pb.stop:
			_ = pb.p.Close()
			return
		case <-ticker.C:
			if !pb.p.IsPlaying() {
				_ = pb.p.Close()
				return
			}
		}
	}
}

// Stop pauses the player immediately; the watcher releases it.
func (pb *playback) Stop() {
	pb.stopOnce.Do(func() {
		pb.p.Pause()
		close(pb.stop)
	})
}

func (pb *playback) Done() <-chan struct{} { return pb.done }
