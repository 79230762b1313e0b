package session

import (
	"sync"

	"github.com/oddity-ai/oddity-rtsp/internal/metrics"
	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
	"github.com/oddity-ai/oddity-rtsp/internal/source"
	"github.com/oddity-ai/oddity-rtsp/pkg/headers"
	"github.com/oddity-ai/oddity-rtsp/pkg/liberrors"
)

// Manager owns every live Session, keyed by ID. Grounded on spec §4.4's
// SessionManager.setup/play/teardown/stop contract and gortsplib's
// server.go session-map bookkeeping (id generated then checked against the
// map, retried by the caller on collision rather than by the manager).
type Manager struct {
	rt      *runtime.Runtime
	metrics *metrics.Metrics

	mu       sync.Mutex
	sessions map[ID]*Session
}

// NewManager returns an empty Manager bound to rt; every registered
// Session's delivery loop is spawned through rt so it is swept up by the
// server's final shutdown barrier, independent of per-Session teardown. m
// may be nil, in which case no metrics are recorded.
func NewManager(rt *runtime.Runtime, m *metrics.Metrics) *Manager {
	return &Manager{rt: rt, metrics: m, sessions: make(map[ID]*Session)}
}

// Setup registers a new Session under a freshly generated ID around the
// already-negotiated setup, and spawns its delivery loop. Returns
// liberrors.ErrAlreadyRegistered on the vanishingly unlikely id collision
// (the manager does not retry internally).
func (m *Manager) Setup(delegate *source.SourceDelegate, setup *Setup) (ID, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	if _, exists := m.sessions[id]; exists {
		m.mu.Unlock()
		return "", liberrors.ErrAlreadyRegistered{ID: string(id)}
	}
	sess := newSession(id, delegate, setup, m.metrics)
	m.sessions[id] = sess
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsActive.Inc()
	}
	m.rt.Spawn(sess.run)

	return id, nil
}

// Play applies PLAY to the Session named by id. found is false if id is
// unknown; err is ErrRangeNotSupported or ErrControlBroken.
func (m *Manager) Play(id ID, rng *headers.Range) (state StreamState, err error, found bool) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return StreamState{}, nil, false
	}

	if !rng.IsNowOnly() {
		return StreamState{}, liberrors.ErrRangeNotSupported{}, true
	}

	state, err = sess.play()
	return state, err, true
}

// Teardown stops the Session named by id and removes it. Reports whether id
// was known.
func (m *Manager) Teardown(id ID) bool {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	sess.teardown()
	if m.metrics != nil {
		m.metrics.SessionsActive.Dec()
	}
	return true
}

// Stop tears down every live Session.
func (m *Manager) Stop() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, sess := range m.sessions {
		all = append(all, sess)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, sess := range all {
		sess.teardown()
		if m.metrics != nil {
			m.metrics.SessionsActive.Dec()
		}
	}
}
