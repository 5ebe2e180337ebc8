// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

import "context"

// Speech is the result of the synthesis fallback chain. An empty AudioURL
// means the text has to be spoken by the telephony provider itself.
type Speech struct {
	Text     string
	AudioURL string
	Locale   string
}

func (s Speech) HasAudio() bool {
	return s.AudioURL != ""
}

// SpeechSynthesizer turns reply text into something Twilio can play.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, profile LanguageProfile) Speech
	Healthy(ctx context.Context) bool
}

// TextNormalizer defines the contract for provider-specific text preprocessing.
type TextNormalizer interface {
	Normalize(ctx context.Context, text string) string
}

// AudioStore keeps synthesized clips until Twilio fetches them.
type AudioStore interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Name() string
}
