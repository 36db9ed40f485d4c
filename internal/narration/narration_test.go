package narration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jwulff/holodeck/internal/audio"
	"github.com/jwulff/holodeck/internal/daemon"
	"github.com/jwulff/holodeck/internal/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWAV() []byte {
	samples := make([]int16, 240)
	var buf bytes.Buffer
	dataLen := uint32(len(samples) * 2)
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVEfmt ")
	for _, v := range []any{uint32(16), uint16(1), uint16(1), uint32(24000), uint32(48000), uint16(2), uint16(16)} {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataLen)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

type fakeProvider struct {
	speech *Speech
	err    error
	calls  int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Synthesize(_ context.Context, req *Request) (*Speech, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	s := *p.speech
	s.Voice = req.Voice
	return &s, nil
}

func (p *fakeProvider) Health(context.Context) error { return p.err }

type fakeHandle struct{ done chan struct{} }

func (h *fakeHandle) Stop()                 {}
func (h *fakeHandle) Done() <-chan struct{} { return h.done }

type fakeOutput struct {
	played  []*audio.Clip
	playErr error
}

func (o *fakeOutput) Resume() error   { return nil }
func (o *fakeOutput) Suspend() error  { return nil }
func (o *fakeOutput) SampleRate() int { return 44100 }

func (o *fakeOutput) Play(clip *audio.Clip) (audio.Handle, error) {
	if o.playErr != nil {
		return nil, o.playErr
	}
	o.played = append(o.played, clip)
	return &fakeHandle{done: make(chan struct{})}, nil
}

func TestOpenAIProviderSynthesize(t *testing.T) {
	wav := testWAV()
	var got openAISpeechRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write(wav)
	}))
	defer server.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Endpoint: server.URL + "/"}, zerolog.Nop())
	speech, err := p.Synthesize(context.Background(), &Request{Text: "Hello, cadet."})
	require.NoError(t, err)

	assert.Equal(t, wav, speech.Audio)
	assert.Equal(t, "wav", speech.Format)
	assert.Equal(t, "openai", speech.Provider)
	assert.Equal(t, "nova", speech.Voice)

	assert.Equal(t, "tts-1", got.Model)
	assert.Equal(t, "Hello, cadet.", got.Input)
	assert.Equal(t, "wav", got.ResponseFormat)
	assert.Equal(t, 1.0, got.Speed)
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Endpoint: server.URL}, zerolog.Nop())
	_, err := p.Synthesize(context.Background(), &Request{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIProviderWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	p := NewOpenAIProvider(OpenAIConfig{}, zerolog.Nop())
	_, err := p.Synthesize(context.Background(), &Request{Text: "x"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.ErrorIs(t, p.Health(context.Background()), ErrProviderUnavailable)
}

func TestOpenAIProviderHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	defer server.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Endpoint: server.URL}, zerolog.Nop())
	assert.NoError(t, p.Health(context.Background()))
}

func TestRequestValidation(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "k"}, zerolog.Nop())

	_, err := p.Synthesize(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = p.Synthesize(context.Background(), &Request{Text: string(make([]byte, MaxTextLength+1))})
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestSilentProvider(t *testing.T) {
	var p SilentProvider
	_, err := p.Synthesize(context.Background(), &Request{Text: "x"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.ErrorIs(t, p.Health(context.Background()), ErrProviderUnavailable)
	assert.Equal(t, "none", p.Name())
}

// serveDaemon answers every command on sockPath with respond.
func serveDaemon(t *testing.T, respond func(daemon.Command) daemon.Response) string {
	t.Helper()

	sockPath := filepath.Join(t.TempDir(), "speechd.sock")
	ln, err := net.Listen("unix", sockPath)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var cmd daemon.Command
					if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
						return
					}
					data, _ := json.Marshal(respond(cmd))
					conn.Write(append(data, '\n'))
				}
			}(conn)
		}
	}()
	return sockPath
}

func TestDaemonProviderSynthesize(t *testing.T) {
	wav := testWAV()
	seenCh := make(chan daemon.Command, 1)
	sockPath := serveDaemon(t, func(cmd daemon.Command) daemon.Response {
		seenCh <- cmd
		return daemon.Response{OK: true, Audio: wav, Format: "wav", SampleRate: 24000}
	})

	p := NewDaemonProvider(sockPath, "alloy", 1.1, time.Second, zerolog.Nop())
	speech, err := p.Synthesize(context.Background(), &Request{Text: "Gravity bends light."})
	require.NoError(t, err)

	assert.Equal(t, wav, speech.Audio)
	assert.Equal(t, 24000, speech.SampleRate)
	assert.Equal(t, "daemon", speech.Provider)

	seen := <-seenCh
	assert.Equal(t, daemon.CmdSynthesize, seen.Cmd)
	assert.Equal(t, "alloy", seen.Voice)
	require.NotNil(t, seen.Speed)
	assert.Equal(t, 1.1, *seen.Speed)
}

func TestDaemonProviderErrors(t *testing.T) {
	sockPath := serveDaemon(t, func(cmd daemon.Command) daemon.Response {
		switch cmd.Cmd {
		case daemon.CmdVoices:
			return daemon.Response{OK: true, Voices: []string{"alloy", "nova"}}
		case daemon.CmdStatus:
			return daemon.Response{OK: true, Status: "ready"}
		}
		return daemon.Response{OK: false, Error: "voice not installed"}
	})

	p := NewDaemonProvider(sockPath, "", 0, time.Second, zerolog.Nop())
	_, err := p.Synthesize(context.Background(), &Request{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice not installed")

	assert.NoError(t, p.Health(context.Background()))

	voices, err := p.Voices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alloy", "nova"}, voices)
}

func TestDaemonProviderUnavailable(t *testing.T) {
	p := NewDaemonProvider(filepath.Join(t.TempDir(), "missing.sock"), "", 0, time.Second, zerolog.Nop())
	_, err := p.Synthesize(context.Background(), &Request{Text: "x"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("openai", "nova", 1, "hello")
	assert.Len(t, a, 64)
	assert.Equal(t, a, CacheKey("openai", "nova", 1, "hello"))
	assert.NotEqual(t, a, CacheKey("openai", "nova", 1.25, "hello"))
	assert.NotEqual(t, a, CacheKey("openai", "onyx", 1, "hello"))
	assert.NotEqual(t, a, CacheKey("daemon", "nova", 1, "hello"))
	assert.NotEqual(t, CacheKey("ab", "c", 1, ""), CacheKey("a", "bc", 1, ""))
}

func TestServiceCacheSeparatesModels(t *testing.T) {
	wav := testWAV()
	var (
		mu     sync.Mutex
		models []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAISpeechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		models = append(models, req.Model)
		mu.Unlock()
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write(wav)
	}))
	defer server.Close()

	cache, err := db.OpenCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	standard := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Endpoint: server.URL, Model: "tts-1"}, zerolog.Nop())
	hd := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Endpoint: server.URL, Model: "tts-1-hd"}, zerolog.Nop())
	assert.NotEqual(t, providerIdentity(standard), providerIdentity(hd))
	assert.Equal(t, "fake", providerIdentity(&fakeProvider{}))

	for _, p := range []Provider{standard, hd, standard, hd} {
		_, err := NewService(p, cache, "nova", 1, zerolog.Nop()).Speech(context.Background(), "Stars fuse hydrogen.")
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"tts-1", "tts-1-hd"}, models)

	n, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestServiceNarrate(t *testing.T) {
	provider := &fakeProvider{speech: &Speech{Audio: testWAV(), Format: "wav", SampleRate: 24000, Provider: "fake"}}
	out := &fakeOutput{}
	svc := NewService(provider, nil, "nova", 1, zerolog.Nop())

	h, err := svc.Narrate(context.Background(), "Photons carry energy.", out)
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Len(t, out.played, 1)
	assert.Equal(t, 44100, out.played[0].SampleRate)
}

func TestServiceUsesCache(t *testing.T) {
	cache, err := db.OpenCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	provider := &fakeProvider{speech: &Speech{Audio: testWAV(), Format: "wav", SampleRate: 24000, Provider: "fake"}}
	svc := NewService(provider, cache, "nova", 1, zerolog.Nop())

	first, err := svc.Speech(context.Background(), "Cells divide.")
	require.NoError(t, err)
	second, err := svc.Speech(context.Background(), "Cells divide.")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, first.Audio, second.Audio)

	n, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestServiceFailures(t *testing.T) {
	out := &fakeOutput{}

	failing := NewService(&fakeProvider{err: ErrProviderUnavailable}, nil, "", 0, zerolog.Nop())
	h, err := failing.Narrate(context.Background(), "x", out)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	garbage := NewService(&fakeProvider{speech: &Speech{Audio: []byte("nope"), Format: "ogg"}}, nil, "", 0, zerolog.Nop())
	h, err = garbage.Narrate(context.Background(), "x", out)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	playErr := errors.New("device lost")
	good := NewService(&fakeProvider{speech: &Speech{Audio: testWAV(), Format: "wav"}}, nil, "", 0, zerolog.Nop())
	h, err = good.Narrate(context.Background(), "x", &fakeOutput{playErr: playErr})
	assert.Nil(t, h)
	assert.ErrorIs(t, err, playErr)

	_, err = good.Narrate(context.Background(), "", out)
	assert.ErrorIs(t, err, ErrEmptyText)
}
