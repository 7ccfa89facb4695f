package speech

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
)

// Synthesizer renders narration text to audio through the OpenAI
// /v1/audio/speech endpoint.
type Synthesizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	voice   string
}

func NewSynthesizer(baseURL, apiKey, model, voice string) *Synthesizer {
	return &Synthesizer{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		voice:   voice,
	}
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize returns the audio bytes for the given narration text.
// Empty text fails before any network call.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text for speech synthesis")
	}

	payload, err := json.Marshal(speechRequest{
		Model: s.model,
		Voice: s.voice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	url := s.baseURL + "/v1/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech endpoint returned no audio")
	}
	return audio, nil
}

// SynthesizeToFile writes the synthesized audio to path and returns the
// path for convenience.
func (s *Synthesizer) SynthesizeToFile(ctx context.Context, text, path string) (string, error) {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("failed to save audio file: %w", err)
	}
	return path, nil
}
