// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_session

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	internal_type "github.com/Anand38913/Rasa/api/voice-api/internal/type"
	"github.com/Anand38913/Rasa/pkg/commons"
)

const shardCount = 32

// Store keeps the live call sessions of this process.
//
// Every method returns copies. A Session obtained from the store can be read
// and modified freely without affecting the stored state; mutations go
// through AppendTurn only.
type Store interface {
	// Create registers a new session. It never overwrites: a second Create for
	// the same call id returns ErrDuplicateSession together with the existing
	// session.
	Create(callID, callerNumber, language string) (Session, error)

	// Get returns a snapshot of the session or ErrSessionNotFound.
	Get(callID string) (Session, error)

	// AppendTurn adds one exchange to the end of the session history.
	AppendTurn(callID, userUtterance, botReply string) error

	// Delete removes the session. Deleting an unknown id is a no-op and
	// reports false.
	Delete(callID string) (Session, bool)

	// Len is the number of live sessions.
	Len() int
}

type shard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

type inMemoryStore struct {
	logger commons.Logger
	shards [shardCount]*shard
	now    func() time.Time
}

// NewStore creates an in-memory session store sharded by call id so that
// requests for different calls do not contend on one lock.
func NewStore(logger commons.Logger) Store {
	s := &inMemoryStore{logger: logger, now: time.Now}
	for i := range s.shards {
		s.shards[i] = &shard{sessions: make(map[string]*Session)}
	}
	return s
}

func (s *inMemoryStore) shardFor(callID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(callID))
	return s.shards[h.Sum32()%shardCount]
}

func (s *inMemoryStore) Create(callID, callerNumber, language string) (Session, error) {
	sh := s.shardFor(callID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if existing, ok := sh.sessions[callID]; ok {
		return existing.clone(), fmt.Errorf("call %s: %w", callID, ErrDuplicateSession)
	}
	session := &Session{
		CallID:       callID,
		CallerNumber: callerNumber,
		Language:     language,
		History:      []internal_type.Turn{},
		StartedAt:    s.now(),
	}
	sh.sessions[callID] = session
	s.logger.Debugf("created session: callSid=%s, from=%s, language=%s", callID, callerNumber, language)
	return session.clone(), nil
}

func (s *inMemoryStore) Get(callID string) (Session, error) {
	sh := s.shardFor(callID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	session, ok := sh.sessions[callID]
	if !ok {
		return Session{}, fmt.Errorf("call %s: %w", callID, ErrSessionNotFound)
	}
	return session.clone(), nil
}

func (s *inMemoryStore) AppendTurn(callID, userUtterance, botReply string) error {
	sh := s.shardFor(callID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	session, ok := sh.sessions[callID]
	if !ok {
		return fmt.Errorf("call %s: %w", callID, ErrSessionNotFound)
	}
	session.History = append(session.History, internal_type.Turn{User: userUtterance, Bot: botReply})
	s.logger.Debugf("appended turn: callSid=%s, turns=%d", callID, len(session.History))
	return nil
}

func (s *inMemoryStore) Delete(callID string) (Session, bool) {
	sh := s.shardFor(callID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	session, ok := sh.sessions[callID]
	if !ok {
		return Session{}, false
	}
	delete(sh.sessions, callID)
	s.logger.Debugf("deleted session: callSid=%s, turns=%d", callID, len(session.History))
	return session.clone(), true
}

func (s *inMemoryStore) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.sessions)
		sh.mu.RUnlock()
	}
	return total
}
