// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_type

import "context"

// Turn is one user utterance and the reply the bot gave to it.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// TurnResult is what the orchestrator decided to say next.
type TurnResult struct {
	Reply   string
	EndCall bool
}

// ConversationEngine forwards an utterance to the NLU backend.
//
// Send never fails outward: every upstream problem is mapped to the
// language's fallback text.
type ConversationEngine interface {
	Send(ctx context.Context, callID, utterance, language string, history []Turn) string
	Healthy(ctx context.Context) bool
	Name() string
}
