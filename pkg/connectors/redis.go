// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package connectors

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Anand38913/Rasa/pkg/commons"
)

// RedisConfig is the connection block of the application config.
type RedisConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RedisConnector interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	IsConnected(ctx context.Context) bool
	GetConnection() *redis.Client
	Name() string
}

type redisConnector struct {
	cfg    RedisConfig
	logger commons.Logger
	client *redis.Client
}

func NewRedisConnector(cfg RedisConfig, logger commons.Logger) RedisConnector {
	return &redisConnector{cfg: cfg, logger: logger}
}

func (rc *redisConnector) Name() string {
	return fmt.Sprintf("redis://%s:%d/%d", rc.cfg.Host, rc.cfg.Port, rc.cfg.DB)
}

// Connect opens the client and verifies it with a PING.
func (rc *redisConnector) Connect(ctx context.Context) error {
	rc.client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", rc.cfg.Host, rc.cfg.Port),
		Password:     rc.cfg.Password,
		DB:           rc.cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rc.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("unable to ping %s: %w", rc.Name(), err)
	}
	rc.logger.Infof("connected to %s", rc.Name())
	return nil
}

func (rc *redisConnector) Disconnect(ctx context.Context) error {
	if rc.client == nil {
		return nil
	}
	rc.logger.Debugf("disconnecting from %s", rc.Name())
	return rc.client.Close()
}

func (rc *redisConnector) IsConnected(ctx context.Context) bool {
	if rc.client == nil {
		return false
	}
	return rc.client.Ping(ctx).Err() == nil
}

func (rc *redisConnector) GetConnection() *redis.Client {
	return rc.client
}
