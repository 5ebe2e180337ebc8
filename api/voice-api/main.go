// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	internal_conversation_rasa "github.com/Anand38913/Rasa/api/voice-api/internal/conversation/rasa"
	internal_language "github.com/Anand38913/Rasa/api/voice-api/internal/language"
	internal_orchestrator "github.com/Anand38913/Rasa/api/voice-api/internal/orchestrator"
	internal_session "github.com/Anand38913/Rasa/api/voice-api/internal/session"
	internal_audio_storage "github.com/Anand38913/Rasa/api/voice-api/internal/storage/audio"
	internal_synthesizer "github.com/Anand38913/Rasa/api/voice-api/internal/synthesizer"
	internal_twilio_telephony "github.com/Anand38913/Rasa/api/voice-api/internal/telephony/twilio"
	internal_transformer_sarvam "github.com/Anand38913/Rasa/api/voice-api/internal/transformer/sarvam"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	voice_routers "github.com/Anand38913/Rasa/api/voice-api/router"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
	"github.com/Anand38913/Rasa/pkg/connectors"
	"github.com/Anand38913/Rasa/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	v, err := config.InitConfig()
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	cfg, err := config.GetApplicationConfig(v)
	if err != nil {
		log.Fatalf("invalid application config: %v", err)
	}

	env := utils.FromEnvironmentStr(cfg.Env)
	logger, err := commons.NewApplicationLogger(
		commons.Name(cfg.Name),
		commons.Path(cfg.LogPath),
		commons.Level(cfg.LogLevel),
		commons.Development(env == utils.DEVELOPMENT),
	)
	if err != nil {
		log.Fatalf("unable to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, closeServer, err := newServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("unable to start %s: %v", cfg.Name, err)
	}
	defer closeServer()

	go func() {
		logger.Infof("starting %s %s (%s) on %s", cfg.Name, cfg.Version, env.Get(), cfg.Address())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// newServer wires every component of the voice api behind an http.Server.
// The returned func releases the audio store connection.
func newServer(ctx context.Context, cfg *config.AppConfig, logger commons.Logger) (*http.Server, func(), error) {
	audio, redis, err := audioStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if redis != nil {
			_ = redis.Disconnect(context.Background())
		}
	}

	resolver := internal_language.NewResolver(cfg.DefaultLanguage, cfg.SupportedLanguages)

	var tts internal_transformer_sarvam.TextToSpeech
	if sarvam, err := internal_transformer_sarvam.NewSarvamTextToSpeech(logger, &cfg.Sarvam); err != nil {
		logger.Warnf("sarvam api key not configured, using twilio built-in synthesis")
	} else {
		tts = sarvam
	}

	placer, err := internal_twilio_telephony.NewTwilio(logger, cfg)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("unable to create twilio client: %w", err)
	}

	orchestrator := internal_orchestrator.NewOrchestrator(
		logger,
		internal_session.NewStore(logger),
		resolver,
		internal_conversation_rasa.NewRasaEngine(logger, &cfg.Rasa, resolver),
		internal_synthesizer.NewSynthesizer(logger, tts, internal_transformer_sarvam.NewSarvamNormalizer(logger), audio, cfg.ServerUrl),
		internal_twilio_telephony.NewMarkupBuilder(cfg.ServerUrl, cfg.Gather.Timeout, cfg.Gather.SpeechTimeout),
		placer,
	)
	if redis != nil {
		orchestrator.WithRedis(redis)
	}

	engine := voice_routers.NewEngine(cfg, logger)
	voice_routers.HealthCheckRoutes(cfg, engine, logger, orchestrator)
	voice_routers.VoiceApiRoutes(cfg, engine, logger, orchestrator, audio)
	voice_routers.MetricsRoutes(engine, logger)

	return &http.Server{
		Addr:         cfg.Address(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, release, nil
}

// audioStore picks the configured clip store. The connector is nil unless
// clips live in redis.
func audioStore(ctx context.Context, cfg *config.AppConfig, logger commons.Logger) (internal_type.AudioStore, connectors.RedisConnector, error) {
	if cfg.Audio.Store == "redis" {
		redis := connectors.NewRedisConnector(cfg.Redis, logger)
		if err := redis.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return internal_audio_storage.NewRedisStorage(logger, redis.GetConnection(), cfg.Audio.TTL), redis, nil
	}

	store, err := internal_audio_storage.NewFileStorage(logger, cfg.Audio.Directory)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create audio store: %w", err)
	}
	return store, nil, nil
}
