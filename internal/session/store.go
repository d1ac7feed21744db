package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	sess    *Session
	expires time.Time
}

// Store holds sessions in memory keyed by opaque tokens. Expiry is idle
// based: every successful Get pushes the deadline forward by the TTL.
type Store struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]*entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]*entry),
	}
}

// New creates an empty session and returns its token.
func (s *Store) New() (string, *Session) {
	token := uuid.NewString()
	sess := &Session{}
	s.mu.Lock()
	s.data[token] = &entry{sess: sess, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return token, sess
}

// Get returns the live session for a token. Expired entries are dropped
// eagerly; valid ones get their idle deadline extended.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[token]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expires) {
		delete(s.data, token)
		return nil, false
	}
	e.expires = s.now().Add(s.ttl)
	return e.sess, true
}

// Delete removes a session. Missing tokens are a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
