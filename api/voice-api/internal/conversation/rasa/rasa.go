// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_conversation_rasa

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	internal_language "github.com/Anand38913/Rasa/api/voice-api/internal/language"
	internal_metrics "github.com/Anand38913/Rasa/api/voice-api/internal/metrics"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/config"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const (
	WEBHOOK_PATH = "/webhooks/rest/webhook"
	STATUS_PATH  = "/status"

	ReasonTimeout   = "timeout"
	ReasonTransport = "transport"
	ReasonStatus    = "status"
	ReasonDecode    = "decode"
	ReasonEmpty     = "empty"
)

type rasaEngine struct {
	logger   commons.Logger
	client   *resty.Client
	resolver *internal_language.Resolver
}

type webhookRequest struct {
	Sender   string          `json:"sender"`
	Message  string          `json:"message"`
	Metadata webhookMetadata `json:"metadata"`
}

type webhookMetadata struct {
	Language            string               `json:"language"`
	ConversationHistory []internal_type.Turn `json:"conversation_history"`
}

// webhookFragment is one element of the rest channel reply list. Text is a
// pointer so that fragments carrying only images or buttons can be told
// apart from empty text.
type webhookFragment struct {
	RecipientID string  `json:"recipient_id"`
	Text        *string `json:"text"`
}

// NewRasaEngine talks to the rasa rest channel. The resolver supplies the
// localized fallback replies.
func NewRasaEngine(logger commons.Logger, cfg *config.RasaConfig, resolver *internal_language.Resolver) internal_type.ConversationEngine {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &rasaEngine{
		logger:   logger,
		resolver: resolver,
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.Url, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (r *rasaEngine) Name() string {
	return "rasa"
}

// Send never fails: any upstream problem yields the fallback reply of the
// language.
func (r *rasaEngine) Send(ctx context.Context, callID, utterance, language string, history []internal_type.Turn) string {
	if history == nil {
		history = []internal_type.Turn{}
	}
	payload := webhookRequest{
		Sender:  callID,
		Message: utterance,
		Metadata: webhookMetadata{
			Language:            language,
			ConversationHistory: history,
		},
	}

	r.logger.Infof("sending to rasa: sender=%s, message=%q", callID, utterance)
	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(WEBHOOK_PATH)
	internal_metrics.StageDuration.WithLabelValues(internal_metrics.StageNLU).Observe(time.Since(start).Seconds())

	if err != nil {
		if isTimeout(err) {
			r.logger.Errorf("rasa request timed out: sender=%s", callID)
			return r.fallback(language, ReasonTimeout)
		}
		r.logger.Errorf("error communicating with rasa: sender=%s: %v", callID, err)
		return r.fallback(language, ReasonTransport)
	}
	if !resp.IsSuccess() {
		r.logger.Errorf("rasa error: %d - %s", resp.StatusCode(), resp.String())
		return r.fallback(language, ReasonStatus)
	}

	var fragments []webhookFragment
	if err := json.Unmarshal(resp.Body(), &fragments); err != nil {
		r.logger.Errorf("unable to decode rasa response: %v", err)
		return r.fallback(language, ReasonDecode)
	}

	texts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.Text == nil {
			continue
		}
		if text := strings.TrimSpace(*f.Text); text != "" {
			texts = append(texts, text)
		}
	}
	reply := strings.Join(texts, " ")
	if reply == "" {
		r.logger.Warnf("empty response from rasa: sender=%s", callID)
		return r.fallback(language, ReasonEmpty)
	}
	r.logger.Infof("rasa response: sender=%s, reply=%q", callID, reply)
	return reply
}

func (r *rasaEngine) Healthy(ctx context.Context) bool {
	resp, err := r.client.R().SetContext(ctx).Get(STATUS_PATH)
	if err != nil {
		r.logger.Warnf("rasa health check failed: %v", err)
		return false
	}
	return resp.StatusCode() == 200
}

func (r *rasaEngine) fallback(language, reason string) string {
	internal_metrics.NLUFallbacks.WithLabelValues(reason).Inc()
	return r.resolver.Resolve(language).Fallback
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
