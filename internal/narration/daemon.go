package narration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwulff/holodeck/internal/daemon"
	"github.com/rs/zerolog"
)

// DaemonProvider synthesizes speech through a local speech daemon.
// Each request dials a fresh connection so a daemon restart never leaves
// the provider holding a dead socket.
type DaemonProvider struct {
	socketPath string
	voice      string
	speed      float64
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewDaemonProvider creates a provider for the daemon at socketPath
// (daemon.SocketPath() when empty).
func NewDaemonProvider(socketPath, voice string, speed float64, timeout time.Duration, logger zerolog.Logger) *DaemonProvider {
	if socketPath == "" {
		socketPath = daemon.SocketPath()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DaemonProvider{
		socketPath: socketPath,
		voice:      voice,
		speed:      speed,
		timeout:    timeout,
		logger:     logger.With().Str("provider", "daemon").Logger(),
	}
}

// Name returns the provider identifier.
func (p *DaemonProvider) Name() string { return "daemon" }

// Synthesize sends a synthesize command and returns the inline audio.
func (p *DaemonProvider) Synthesize(ctx context.Context, req *Request) (*Speech, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	voice := req.Voice
	if voice == "" {
		voice = p.voice
	}
	speed := req.Speed
	if speed == 0 {
		speed = p.speed
	}

	cmd := daemon.Command{Cmd: daemon.CmdSynthesize, Text: req.Text, Voice: voice, Format: "wav"}
	if speed != 0 {
		cmd.Speed = daemon.Float64Ptr(speed)
	}

	start := time.Now()
	resp, err := p.exchange(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(resp.Audio) == 0 {
		return nil, errors.New("daemon returned no audio")
	}

	format := resp.Format
	if format == "" {
		format = "wav"
	}

	elapsed := time.Since(start)
	p.logger.Info().
		Int("audioBytes", len(resp.Audio)).
		Dur("processingTime", elapsed).
		Msg("Speech synthesis complete")

	return &Speech{
		Audio:          resp.Audio,
		Format:         format,
		SampleRate:     resp.SampleRate,
		Voice:          voice,
		Provider:       p.Name(),
		ProcessingTime: elapsed,
	}, nil
}

// Health asks the daemon for its status.
func (p *DaemonProvider) Health(ctx context.Context) error {
	_, err := p.exchange(ctx, daemon.Command{Cmd: daemon.CmdStatus})
	return err
}

// Voices lists the voices the daemon has installed.
func (p *DaemonProvider) Voices(ctx context.Context) ([]string, error) {
	resp, err := p.exchange(ctx, daemon.Command{Cmd: daemon.CmdVoices})
	if err != nil {
		return nil, err
	}
	return resp.Voices, nil
}

func (p *DaemonProvider) exchange(ctx context.Context, cmd daemon.Command) (daemon.Response, error) {
	client, err := daemon.Connect(p.socketPath)
	if err != nil {
		return daemon.Response{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer client.Close()

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := client.SetDeadline(deadline); err != nil {
		return daemon.Response{}, fmt.Errorf("set deadline: %w", err)
	}

	// Unblock the exchange if the context is cancelled first.
	stop := context.AfterFunc(ctx, func() { client.Close() })
	defer stop()

	resp, err := client.SendCommand(cmd)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return daemon.Response{}, ctxErr
		}
		return daemon.Response{}, fmt.Errorf("daemon %s: %w", cmd.Cmd, err)
	}
	if !resp.OK {
		return daemon.Response{}, fmt.Errorf("daemon %s: %s", cmd.Cmd, resp.Error)
	}
	return resp, nil
}
