package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/playverse/gamestore/internal/core/domain"
)

type memFlashStore struct {
	mu     sync.Mutex
	queues map[string][]domain.Flash
	err    error
}

func newMemFlashStore() *memFlashStore {
	return &memFlashStore{queues: map[string][]domain.Flash{}}
}

func (s *memFlashStore) Push(_ context.Context, key string, msgs ...domain.Flash) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[key] = append(s.queues[key], msgs...)
	return nil
}

func (s *memFlashStore) Pop(_ context.Context, key string) ([]domain.Flash, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.queues[key]
	delete(s.queues, key)
	if msgs == nil {
		msgs = []domain.Flash{}
	}
	return msgs, nil
}

func (s *memFlashStore) all() []domain.Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Flash
	for _, q := range s.queues {
		out = append(out, q...)
	}
	return out
}

// stubSessions maps opaque tokens to principals.
type stubSessions struct {
	principals map[string]*domain.Principal
	revoked    []string
	revokeErr  error
}

func newStubSessions() *stubSessions {
	return &stubSessions{principals: map[string]*domain.Principal{}}
}

func (s *stubSessions) Issue(user *domain.User) (string, *domain.Principal, error) {
	p := &domain.Principal{
		SessionID:   "sid-" + user.ID,
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	token := "tok-" + user.ID
	s.principals[token] = p
	return token, p, nil
}

func (s *stubSessions) Resolve(_ context.Context, token string) (*domain.Principal, error) {
	p, ok := s.principals[token]
	if !ok {
		return nil, errors.New("invalid session")
	}
	return p, nil
}

func (s *stubSessions) Revoke(_ context.Context, p *domain.Principal) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked = append(s.revoked, p.SessionID)
	for tok, q := range s.principals {
		if q.SessionID == p.SessionID {
			delete(s.principals, tok)
		}
	}
	return nil
}
