// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_synthesizer

import (
	"context"
	"strings"
	"sync"
	"time"

	internal_metrics "github.com/Anand38913/Rasa/api/voice-api/internal/metrics"
	internal_audio_storage "github.com/Anand38913/Rasa/api/voice-api/internal/storage/audio"
	internal_transformer_sarvam "github.com/Anand38913/Rasa/api/voice-api/internal/transformer/sarvam"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const (
	ResultAudio       = "audio"
	ResultProviderURL = "provider_url"
	ResultDisabled    = "disabled"
	ResultFailed      = "failed"
	ResultStoreFailed = "store_failed"

	healthCheckText = "Hello, this is a test."
	// a health probe is a billed synthesis, so its result is reused
	HEALTH_CACHE_TTL = time.Minute
)

type synthesizer struct {
	logger     commons.Logger
	tts        internal_transformer_sarvam.TextToSpeech
	normalizer internal_type.TextNormalizer
	store      internal_type.AudioStore
	serverUrl  string

	mu        sync.Mutex
	now       func() time.Time
	checkedAt time.Time
	healthy   bool
}

// NewSynthesizer wires the primary provider with the audio store. A nil tts
// means no credentials were configured and every request takes the
// built-in synthesis path.
func NewSynthesizer(
	logger commons.Logger,
	tts internal_transformer_sarvam.TextToSpeech,
	normalizer internal_type.TextNormalizer,
	store internal_type.AudioStore,
	serverUrl string,
) internal_type.SpeechSynthesizer {
	return &synthesizer{
		logger:     logger,
		tts:        tts,
		normalizer: normalizer,
		store:      store,
		serverUrl:  strings.TrimRight(serverUrl, "/"),
		now:        time.Now,
	}
}

// Synthesize never fails. When no audio can be produced the returned Speech
// has no AudioURL and the text is spoken with <Say> in the profile locale.
func (s *synthesizer) Synthesize(ctx context.Context, text string, profile internal_type.LanguageProfile) internal_type.Speech {
	speech := internal_type.Speech{Text: text, Locale: profile.RecognitionLocale}
	if s.tts == nil {
		internal_metrics.TTSRequests.WithLabelValues(ResultDisabled).Inc()
		return speech
	}

	input := text
	if s.normalizer != nil {
		input = s.normalizer.Normalize(ctx, text)
	}
	if input == "" {
		internal_metrics.TTSRequests.WithLabelValues(ResultFailed).Inc()
		return speech
	}

	start := time.Now()
	result, err := s.tts.Transform(ctx, input, profile.SynthesisCode, profile.Voice)
	internal_metrics.StageDuration.WithLabelValues(internal_metrics.StageTTS).Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Warnf("%s: falling back to built-in synthesis, language=%s: %v", s.tts.Name(), profile.Tag, err)
		internal_metrics.TTSRequests.WithLabelValues(ResultFailed).Inc()
		return speech
	}

	if len(result.Audio) == 0 {
		if result.AudioURL == "" {
			internal_metrics.TTSRequests.WithLabelValues(ResultFailed).Inc()
			return speech
		}
		internal_metrics.TTSRequests.WithLabelValues(ResultProviderURL).Inc()
		speech.AudioURL = result.AudioURL
		return speech
	}

	name := internal_audio_storage.NewName(profile.Tag)
	if err := s.store.Put(ctx, name, result.Audio); err != nil {
		s.logger.Errorf("unable to persist synthesized audio to %s: %v", s.store.Name(), err)
		internal_metrics.TTSRequests.WithLabelValues(ResultStoreFailed).Inc()
		return speech
	}
	internal_metrics.TTSRequests.WithLabelValues(ResultAudio).Inc()
	speech.AudioURL = s.serverUrl + "/audio/" + name
	s.logger.Debugf("synthesized speech: language=%s, url=%s", profile.Tag, speech.AudioURL)
	return speech
}

// Healthy synthesizes a short english phrase without storing it. The answer
// is cached for HEALTH_CACHE_TTL.
func (s *synthesizer) Healthy(ctx context.Context) bool {
	if s.tts == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.checkedAt.IsZero() && s.now().Sub(s.checkedAt) < HEALTH_CACHE_TTL {
		return s.healthy
	}

	s.healthy = s.probe(ctx)
	s.checkedAt = s.now()
	return s.healthy
}

func (s *synthesizer) probe(ctx context.Context) bool {
	result, err := s.tts.Transform(ctx, healthCheckText, "en-IN", "")
	if err != nil {
		s.logger.Warnf("%s: health check failed: %v", s.tts.Name(), err)
		return false
	}
	return len(result.Audio) > 0 || result.AudioURL != ""
}
