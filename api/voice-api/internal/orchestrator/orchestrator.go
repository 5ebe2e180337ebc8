// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	internal_language "github.com/Anand38913/Rasa/api/voice-api/internal/language"
	internal_metrics "github.com/Anand38913/Rasa/api/voice-api/internal/metrics"
	internal_session "github.com/Anand38913/Rasa/api/voice-api/internal/session"
	internal_twilio_telephony "github.com/Anand38913/Rasa/api/voice-api/internal/telephony/twilio"
	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/pkg/commons"
	"github.com/Anand38913/Rasa/pkg/connectors"
	"github.com/Anand38913/Rasa/pkg/utils"
)

var ErrMissingNumber = errors.New("to_number is required")

// terminal call statuses reported by the status callback
var terminalStatuses = map[string]struct{}{
	"completed": {},
	"failed":    {},
	"busy":      {},
	"no-answer": {},
	"canceled":  {},
}

func IsTerminal(status string) bool {
	_, ok := terminalStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Orchestrator drives the per-call state machine NEW -> ACTIVE -> ENDED from
// the independent webhook callbacks Twilio sends for one call.
//
// Every webhook method returns a TwiML document and never an error: failures
// are rendered as an apology followed by a hangup.
type Orchestrator struct {
	logger   commons.Logger
	store    internal_session.Store
	resolver *internal_language.Resolver
	engine   internal_type.ConversationEngine
	synth    internal_type.SpeechSynthesizer
	markup   internal_type.MarkupBuilder
	placer   internal_type.CallPlacer
	// set when audio clips live in redis
	redis connectors.RedisConnector
}

func NewOrchestrator(
	logger commons.Logger,
	store internal_session.Store,
	resolver *internal_language.Resolver,
	engine internal_type.ConversationEngine,
	synth internal_type.SpeechSynthesizer,
	markup internal_type.MarkupBuilder,
	placer internal_type.CallPlacer,
) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		store:    store,
		resolver: resolver,
		engine:   engine,
		synth:    synth,
		markup:   markup,
		placer:   placer,
	}
}

// WithRedis adds the redis connection backing the audio store to the health
// report.
func (o *Orchestrator) WithRedis(redis connectors.RedisConnector) *Orchestrator {
	o.redis = redis
	return o
}

// StartCall handles the call-start webhook. A repeated call-start for a live
// call keeps the existing session and greets again in its language.
func (o *Orchestrator) StartCall(ctx context.Context, ev internal_type.CallStartEvent) (twiml string) {
	profile := o.resolver.Resolve(ev.Language)
	defer o.recoverInto(&twiml, ev.CallID, &profile)

	o.logger.Infof("incoming call: callSid=%s, from=%s, language=%s", ev.CallID, ev.From, profile.Tag)
	if ev.CallID == "" {
		o.logger.Warnf("call-start without CallSid, from=%s", ev.From)
		internal_metrics.SessionErrors.WithLabelValues("missing_call_sid").Inc()
		return o.failure(profile)
	}

	session, err := o.store.Create(ev.CallID, ev.From, profile.Tag)
	switch {
	case err == nil:
		internal_metrics.CallsTotal.Inc()
		internal_metrics.CallsActive.Inc()
	case errors.Is(err, internal_session.ErrDuplicateSession):
		o.logger.Warnf("duplicate call-start, keeping existing session: callSid=%s, language=%s", ev.CallID, session.Language)
		internal_metrics.SessionErrors.WithLabelValues("duplicate_start").Inc()
		profile = o.resolver.Resolve(session.Language)
	default:
		o.logger.Errorf("unable to create session for %s: %v", ev.CallID, err)
		return o.failure(profile)
	}

	return o.respond(ctx, ev.CallID, internal_type.TurnResult{Reply: profile.Greeting}, profile)
}

// ProcessSpeech handles one speech turn. The no-input redirect arrives here
// with an empty utterance and is answered with a re-prompt, without asking
// the NLU and without touching the history.
func (o *Orchestrator) ProcessSpeech(ctx context.Context, ev internal_type.SpeechTurnEvent) (twiml string) {
	profile := o.resolver.Resolve(ev.Language)
	defer o.recoverInto(&twiml, ev.CallID, &profile)

	o.logger.Infof("speech turn: callSid=%s, speech=%q, confidence=%.2f", ev.CallID, ev.Utterance, ev.Confidence)
	session, err := o.store.Get(ev.CallID)
	if err != nil {
		o.logger.Warnf("session not found for callSid=%s", ev.CallID)
		internal_metrics.SessionErrors.WithLabelValues("unknown_session").Inc()
		return o.failure(profile)
	}
	profile = o.resolver.Resolve(session.Language)

	utterance := strings.TrimSpace(ev.Utterance)
	if utils.IsEmpty(utterance) {
		o.logger.Debugf("no speech captured, re-prompting: callSid=%s", ev.CallID)
		return o.respond(ctx, ev.CallID, internal_type.TurnResult{Reply: profile.Fallback}, profile)
	}

	o.logger.Debugf("asking %s: callSid=%s, turns=%d", o.engine.Name(), ev.CallID, len(session.History))
	reply := o.engine.Send(ctx, ev.CallID, utterance, session.Language, session.History)
	if err := o.store.AppendTurn(ev.CallID, utterance, reply); err != nil {
		// the call ended while the NLU was answering
		o.logger.Warnf("unable to record turn for %s: %v", ev.CallID, err)
	}
	internal_metrics.TurnsTotal.Inc()

	return o.respond(ctx, ev.CallID, internal_type.TurnResult{Reply: reply}, profile)
}

// HandleStatus ends the session on a terminal status and reports whether a
// session was removed. Unknown calls and non-terminal statuses are no-ops.
func (o *Orchestrator) HandleStatus(ctx context.Context, ev internal_type.StatusEvent) bool {
	o.logger.Infof("call status update: callSid=%s, status=%s", ev.CallID, ev.Status)
	if !IsTerminal(ev.Status) {
		return false
	}
	session, ok := o.store.Delete(ev.CallID)
	if !ok {
		return false
	}
	internal_metrics.CallsActive.Dec()
	o.logger.Infof("session cleaned up: callSid=%s, turns=%d, duration=%s",
		ev.CallID, len(session.History), time.Since(session.StartedAt).Round(time.Millisecond))
	return true
}

// InitiateCall places an outbound call. Unsupported languages are replaced
// with the default one before the call is placed.
func (o *Orchestrator) InitiateCall(ctx context.Context, to, language string) (*internal_type.OutboundCall, error) {
	if utils.IsEmpty(to) {
		return nil, ErrMissingNumber
	}
	to = strings.TrimSpace(to)
	tag := strings.ToLower(strings.TrimSpace(language))
	if !o.resolver.Supported(tag) {
		if tag != "" {
			o.logger.Warnf("unsupported language %q for outbound call, using %s", language, o.resolver.Default())
		}
		tag = o.resolver.Default()
	}

	callID, err := o.placer.PlaceCall(ctx, to, tag)
	if err != nil {
		return nil, err
	}
	o.logger.Infof("outbound call initiated: to=%s, callSid=%s, language=%s", to, callID, tag)
	return &internal_type.OutboundCall{CallID: callID, To: to, Language: tag}, nil
}

func (o *Orchestrator) respond(ctx context.Context, callID string, result internal_type.TurnResult, profile internal_type.LanguageProfile) string {
	speech := o.synth.Synthesize(ctx, result.Reply, profile)
	doc, err := o.markup.Conversation(speech, profile, result.EndCall)
	if err != nil {
		o.logger.Errorf("unable to render twiml for %s: %v", callID, err)
		return o.failure(profile)
	}
	return doc
}

func (o *Orchestrator) failure(profile internal_type.LanguageProfile) (doc string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Errorf("panic while rendering failure twiml: %v", r)
			doc = internal_twilio_telephony.HANGUP_TWIML
		}
	}()
	doc, err := o.markup.Failure(profile)
	if err != nil {
		o.logger.Errorf("unable to render failure twiml: %v", err)
		return internal_twilio_telephony.HANGUP_TWIML
	}
	return doc
}

func (o *Orchestrator) recoverInto(twiml *string, callID string, profile *internal_type.LanguageProfile) {
	if r := recover(); r != nil {
		o.logger.Errorf("recovered panic while handling call %s: %v", callID, r)
		internal_metrics.SessionErrors.WithLabelValues("panic").Inc()
		*twiml = o.failure(*profile)
	}
}
