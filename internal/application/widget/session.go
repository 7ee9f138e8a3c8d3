package widget

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-widget/internal/domain/usecase/weather"
	"weather-widget/internal/infra/metrics"
	"weather-widget/pkg/log"
	"weather-widget/pkg/msg"
)

// SessionStore keeps one Controller per browser session. Sessions idle for longer
// than the TTL are closed by Sweep; when the store is full the least recently used
// session is closed to make room.
type SessionStore struct {
	useCase     weather.UseCase
	defaultCity string
	ttl         time.Duration
	maxSessions int
	metrics     *metrics.Metrics
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*list.Element
	lru      *list.List
}

type session struct {
	id         string
	controller *Controller
	lastSeen   time.Time
}

func NewSessionStore(useCase weather.UseCase, defaultCity string, ttl time.Duration, maxSessions int, m *metrics.Metrics) *SessionStore {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &SessionStore{
		useCase:     useCase,
		defaultCity: defaultCity,
		ttl:         ttl,
		maxSessions: maxSessions,
		metrics:     m,
		now:         time.Now,
		sessions:    make(map[string]*list.Element),
		lru:         list.New(),
	}
}

// Get returns the controller for id, creating a new session when id is unknown.
// The returned id differs from the argument when a session was created.
func (s *SessionStore) Get(id string) (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.sessions[id]; ok {
		sess := elem.Value.(*session)
		sess.lastSeen = s.now()
		s.lru.MoveToFront(elem)
		return sess.id, sess.controller
	}

	for s.lru.Len() >= s.maxSessions {
		s.removeLocked(s.lru.Back())
	}

	sess := &session{
		id:         uuid.NewString(),
		controller: NewController(s.useCase, s.defaultCity),
		lastSeen:   s.now(),
	}
	s.sessions[sess.id] = s.lru.PushFront(sess)
	s.metrics.SetSessions(s.lru.Len())
	log.Debug(msg.GetMessage("widget.session-created", sess.id), zap.String("session_id", sess.id))

	return sess.id, sess.controller
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Sweep closes sessions idle for longer than the TTL and returns how many it closed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for elem := s.lru.Back(); elem != nil; {
		sess := elem.Value.(*session)
		if sess.lastSeen.After(cutoff) {
			break
		}
		prev := elem.Prev()
		s.removeLocked(elem)
		removed++
		elem = prev
	}
	return removed
}

// Close closes every session.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.lru.Len() > 0 {
		s.removeLocked(s.lru.Back())
	}
}

func (s *SessionStore) removeLocked(elem *list.Element) {
	sess := s.lru.Remove(elem).(*session)
	delete(s.sessions, sess.id)
	sess.controller.Close()
	s.metrics.SetSessions(s.lru.Len())
	log.Debug(msg.GetMessage("widget.session-expired", sess.id), zap.String("session_id", sess.id))
}
