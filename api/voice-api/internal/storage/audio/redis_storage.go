// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_audio_storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const KEY_PREFIX = "voicebot:audio:"

type redisStorage struct {
	logger commons.Logger
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStorage keeps clips in redis with an expiry, so clips served to
// Twilio disappear once the call no longer needs them.
func NewRedisStorage(logger commons.Logger, client redis.Cmdable, ttl time.Duration) internal_type.AudioStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisStorage{logger: logger, client: client, ttl: ttl}
}

func (s *redisStorage) Name() string {
	return "redis"
}

func (s *redisStorage) key(name string) string {
	return KEY_PREFIX + name
}

func (s *redisStorage) Put(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("unable to store audio %s: %w", name, err)
	}
	s.logger.Debugf("stored audio in redis: key=%s, bytes=%d, ttl=%s", s.key(name), len(data), s.ttl)
	return nil
}

func (s *redisStorage) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", name, ErrAudioNotFound)
		}
		return nil, fmt.Errorf("unable to read audio %s: %w", name, err)
	}
	return data, nil
}
