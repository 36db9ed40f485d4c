package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultOpenAIEndpoint is the public OpenAI API base URL.
const DefaultOpenAIEndpoint = "https://api.openai.com"

// OpenAIConfig holds OpenAI speech configuration.
type OpenAIConfig struct {
	APIKey   string
	Endpoint string        // base URL of an OpenAI-compatible API
	Model    string        // tts-1 or tts-1-hd
	Voice    string        // alloy, echo, fable, onyx, nova, shimmer
	Speed    float64       // 0.25 to 4.0
	Timeout  time.Duration
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Endpoint: DefaultOpenAIEndpoint,
		Model:    "tts-1",
		Voice:    "nova",
		Speed:    1.0,
		Timeout:  30 * time.Second,
	}
}

// OpenAIProvider synthesizes speech with the OpenAI audio API.
type OpenAIProvider struct {
	apiKey string
	client *http.Client
	config OpenAIConfig
	logger zerolog.Logger
}

// NewOpenAIProvider creates a provider. The API key falls back to
// OPENAI_API_KEY.
func NewOpenAIProvider(config OpenAIConfig, logger zerolog.Logger) *OpenAIProvider {
	defaults := DefaultOpenAIConfig()
	if config.Endpoint == "" {
		config.Endpoint = defaults.Endpoint
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Voice == "" {
		config.Voice = defaults.Voice
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return &OpenAIProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: config.Timeout},
		config: config,
		logger: logger.With().Str("provider", "openai").Logger(),
	}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return "openai" }

// Fingerprint identifies the provider and model, so audio from one model is
// never served for another.
func (p *OpenAIProvider) Fingerprint() string { return p.Name() + "/" + p.config.Model }

type openAISpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
}

// Synthesize requests a WAV rendition of the text.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req *Request) (*Speech, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key not configured", ErrProviderUnavailable)
	}

	start := time.Now()

	voice := req.Voice
	if voice == "" {
		voice = p.config.Voice
	}
	speed := req.Speed
	if speed == 0 {
		speed = p.config.Speed
	}

	body, err := json.Marshal(openAISpeechRequest{
		Model:          p.config.Model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: "wav",
		Speed:          speed,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url("/v1/audio/speech"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	p.logger.Debug().
		Str("voice", voice).
		Str("model", p.config.Model).
		Int("textLen", len(req.Text)).
		Msg("Sending speech request")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(msg)).
			Msg("Speech request failed")
		return nil, fmt.Errorf("openai speech: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	elapsed := time.Since(start)
	p.logger.Info().
		Str("voice", voice).
		Int("audioBytes", len(audio)).
		Dur("processingTime", elapsed).
		Msg("Speech synthesis complete")

	return &Speech{
		Audio:          audio,
		Format:         "wav",
		SampleRate:     24000,
		Voice:          voice,
		Provider:       p.Name(),
		ProcessingTime: elapsed,
	}, nil
}

// Health checks that a key is configured and the API answers.
func (p *OpenAIProvider) Health(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: OpenAI API key not configured", ErrProviderUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url("/v1/models"), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	return nil
}

func (p *OpenAIProvider) url(path string) string {
	return strings.TrimRight(p.config.Endpoint, "/") + path
}
