// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_sarvam

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

var ErrNoAudio = errors.New("sarvam: no audio in response")

// SpeechResult carries either raw audio or a provider hosted url.
type SpeechResult struct {
	Audio    []byte
	AudioURL string
}

type TextToSpeech interface {
	Transform(ctx context.Context, text, languageCode, speaker string) (*SpeechResult, error)
	Name() string
}

type sarvamTextToSpeech struct {
	*sarvamOption
	logger commons.Logger
	client *resty.Client
}

type textToSpeechResponse struct {
	Audio    string   `json:"audio"`
	Audios   []string `json:"audios"`
	AudioURL string   `json:"audio_url"`
}

func NewSarvamTextToSpeech(logger commons.Logger, cfg *config.SarvamConfig) (TextToSpeech, error) {
	opt, err := NewSarvamOption(logger, cfg)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &sarvamTextToSpeech{
		sarvamOption: opt,
		logger:       logger,
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}, nil
}

func (*sarvamTextToSpeech) Name() string {
	return "sarvam-text-to-speech"
}

func (rt *sarvamTextToSpeech) Transform(ctx context.Context, text, languageCode, speaker string) (*SpeechResult, error) {
	resp, err := rt.client.R().
		SetContext(ctx).
		SetAuthToken(rt.GetKey()).
		SetBody(rt.GetTextToSpeechRequest(text, languageCode, speaker)).
		Post(rt.url)
	if err != nil {
		rt.logger.Errorf("sarvam-tts: request failed: %v", err)
		return nil, fmt.Errorf("sarvam: request failed: %w", err)
	}
	if !resp.IsSuccess() {
		rt.logger.Errorf("sarvam-tts: api error %d - %s", resp.StatusCode(), resp.String())
		return nil, SarvamError{StatusCode: resp.StatusCode(), Message: resp.String()}
	}

	var out textToSpeechResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("sarvam: unable to decode response: %w", err)
	}

	payload := out.Audio
	if payload == "" && len(out.Audios) > 0 {
		payload = out.Audios[0]
	}
	if payload != "" {
		audio, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("sarvam: unable to decode audio: %w", err)
		}
		if len(audio) == 0 {
			return nil, ErrNoAudio
		}
		return &SpeechResult{Audio: audio}, nil
	}
	if out.AudioURL != "" {
		return &SpeechResult{AudioURL: out.AudioURL}, nil
	}
	return nil, ErrNoAudio
}
