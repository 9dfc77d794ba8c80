package captcha

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	operandMin  = 1
	operandMax  = 10
	maxAttempts = 3
)

// Challenge is the public view of an arithmetic human-verification question.
// The answer stays server-side.
type Challenge struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type challenge struct {
	a, b      int
	attempts  int
	expiresAt time.Time
}

// Service issues and verifies challenges. A challenge verifies successfully
// exactly once; generating a new challenge never revives an old one.
type Service struct {
	mu         sync.Mutex
	challenges map[string]*challenge
	ttl        time.Duration
	now        func() time.Time
	intN       func(n int) int
}

type Option func(*Service)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		challenges: map[string]*challenge{},
		ttl:        ttl,
		now:        time.Now,
		intN:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate creates a fresh challenge with both operands uniform in [1,10].
func (s *Service) Generate() Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	c := &challenge{
		a:         operandMin + s.intN(operandMax-operandMin+1),
		b:         operandMin + s.intN(operandMax-operandMin+1),
		expiresAt: s.now().Add(s.ttl),
	}
	id := uuid.NewString()
	s.challenges[id] = c

	return Challenge{
		ID:        id,
		Question:  fmt.Sprintf("What is %d + %d?", c.a, c.b),
		ExpiresAt: c.expiresAt,
	}
}

// Verify checks the answer for a challenge. A correct answer consumes the
// challenge so it cannot be replayed; repeated wrong answers burn it after
// a small attempt budget.
func (s *Service) Verify(id string, answer int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[id]
	if !ok {
		return false
	}
	if s.now().After(c.expiresAt) {
		delete(s.challenges, id)
		return false
	}

	if answer == c.a+c.b {
		delete(s.challenges, id)
		return true
	}

	c.attempts++
	if c.attempts >= maxAttempts {
		delete(s.challenges, id)
	}
	return false
}

func (s *Service) sweepLocked() {
	now := s.now()
	for id, c := range s.challenges {
		if now.After(c.expiresAt) {
			delete(s.challenges, id)
		}
	}
}
