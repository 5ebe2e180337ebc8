// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

import "context"

// CallStartEvent is the payload of the incoming-call webhook.
type CallStartEvent struct {
	CallID   string
	From     string
	Language string
}

// SpeechTurnEvent is the payload of the gather action webhook.
type SpeechTurnEvent struct {
	CallID     string
	Utterance  string
	Confidence float64
	// optional, only used when the session is gone
	Language string
}

// StatusEvent is the payload of the status callback webhook.
type StatusEvent struct {
	CallID string
	Status string
}

// OutboundCall describes a call placed through the telephony REST api.
type OutboundCall struct {
	CallID   string `json:"call_sid"`
	To       string `json:"to"`
	Language string `json:"language"`
}

// CallPlacer creates outbound calls which then come back as call-start
// webhooks.
type CallPlacer interface {
	PlaceCall(ctx context.Context, to, language string) (string, error)
}

// MarkupBuilder renders the TwiML documents returned to Twilio.
type MarkupBuilder interface {
	Conversation(speech Speech, profile LanguageProfile, endCall bool) (string, error)
	Failure(profile LanguageProfile) (string, error)
}
