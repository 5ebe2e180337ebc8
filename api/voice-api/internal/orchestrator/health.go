// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_orchestrator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	internal_metrics "github.com/Anand38913/Rasa/api/voice-api/internal/metrics"
)

const healthTimeout = 5 * time.Second

type HealthReport struct {
	Status             string   `json:"status"`
	NLUStatus          bool     `json:"nlu_status"`
	TTSStatus          bool     `json:"tts_status"`
	TwilioStatus       string   `json:"twilio_status"`
	RedisStatus        *bool    `json:"redis_status,omitempty"`
	ActiveSessions     int      `json:"active_sessions"`
	SupportedLanguages []string `json:"supported_languages"`
}

// Health probes every dependency concurrently. The service itself
// stays healthy when a dependency is down since every path has a fallback.
func (o *Orchestrator) Health(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var nlu, tts, redis bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nlu = o.engine.Healthy(gctx)
		return nil
	})
	g.Go(func() error {
		tts = o.synth.Healthy(gctx)
		return nil
	})
	if o.redis != nil {
		g.Go(func() error {
			redis = o.redis.IsConnected(gctx)
			return nil
		})
	}
	_ = g.Wait()

	active := o.store.Len()
	internal_metrics.CallsActive.Set(float64(active))
	report := HealthReport{
		Status:             "healthy",
		NLUStatus:          nlu,
		TTSStatus:          tts,
		TwilioStatus:       "connected",
		ActiveSessions:     active,
		SupportedLanguages: o.resolver.Tags(),
	}
	if o.redis != nil {
		report.RedisStatus = &redis
	}
	return report
}
