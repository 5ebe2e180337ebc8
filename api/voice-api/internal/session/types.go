// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_session

import (
	"errors"
	"time"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
)

var (
	ErrDuplicateSession = errors.New("session already exists")
	ErrSessionNotFound  = errors.New("session not found")
)

// Session holds one phone call's conversational state. It lives from the
// call-start webhook until a terminal status callback for the same CallSid.
type Session struct {
	CallID       string
	CallerNumber string
	// fixed at call start
	Language  string
	History   []internal_type.Turn
	StartedAt time.Time
}

func (s *Session) clone() Session {
	c := *s
	c.History = make([]internal_type.Turn, len(s.History))
	copy(c.History, s.History)
	return c
}
