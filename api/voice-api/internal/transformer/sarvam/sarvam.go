// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_transformer_sarvam

import (
	"encoding/json"
	"fmt"

	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const (
	SARVAM_URL = "https://api.sarvam.ai/text-to-speech"
	MODEL      = "bulbul:v1"
	VOICE      = "meera"

	// telephony audio, Twilio plays it as is
	SAMPLE_RATE = 8000
	LOUDNESS    = 1.5
)

type sarvamOption struct {
	logger commons.Logger
	key    string
	url    string
	model  string
	voice  string
	pace   float64
}

func NewSarvamOption(logger commons.Logger, cfg *config.SarvamConfig) (*sarvamOption, error) {
	if cfg == nil || cfg.ApiKey == "" {
		return nil, fmt.Errorf("sarvam: illegal api key config")
	}
	opt := &sarvamOption{
		logger: logger,
		key:    cfg.ApiKey,
		url:    cfg.ApiUrl,
		model:  cfg.Model,
		voice:  cfg.Voice,
		pace:   cfg.VoiceSpeed,
	}
	if opt.url == "" {
		opt.url = SARVAM_URL
	}
	if opt.model == "" {
		opt.model = MODEL
	}
	if opt.pace <= 0 {
		opt.pace = 1.0
	}
	return opt, nil
}

func (ro *sarvamOption) GetKey() string {
	return ro.key
}

// GetSpeaker prefers the per-language voice. The configured voice replaces
// VOICE as the default.
func (ro *sarvamOption) GetSpeaker(languageVoice string) string {
	if languageVoice != "" {
		return languageVoice
	}
	if ro.voice != "" {
		return ro.voice
	}
	return VOICE
}

func (ro *sarvamOption) GetTextToSpeechRequest(text, languageCode, speaker string) map[string]interface{} {
	return map[string]interface{}{
		"text":                 text,
		"language_code":        languageCode,
		"speaker":              ro.GetSpeaker(speaker),
		"pitch":                0,
		"pace":                 ro.pace,
		"loudness":             LOUDNESS,
		"speech_sample_rate":   SAMPLE_RATE,
		"enable_preprocessing": true,
		"model":                ro.model,
	}
}

type SarvamError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (e SarvamError) Error() string {
	b, err := json.Marshal(e)
	if err != nil {
		return "undefined error"
	}
	return string(b)
}
