package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/rvcore/vliw-repack/analysis"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")
)

// Session holds one completed analysis run, keyed by a generated ID so a
// client can re-fetch its report/bundles without re-running the pipeline.
type Session struct {
	ID        string
	Result    *analysis.Result
	CreatedAt time.Time
}

// SessionManager caches completed analysis sessions in memory.
type SessionManager struct {
	sessions    map[string]*Session
	broadcaster *Broadcaster
	events      bool
	mu          sync.RWMutex
}

// NewSessionManager creates a new session manager. Broadcasting can be
// disabled by the caller (e.g. via the server's BroadcastEvents config
// flag) without tearing down the broadcaster itself.
func NewSessionManager(broadcaster *Broadcaster) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: broadcaster,
		events:      true,
	}
}

// CreateSession runs the analysis pipeline over path and stores the result
// under a freshly generated session ID, broadcasting progress events as it
// goes.
func (sm *SessionManager) CreateSession(path string) (*Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	var onProgress analysis.ProgressFunc
	if sm.broadcaster != nil && sm.events {
		onProgress = func(step, total int, message string) {
			sm.broadcaster.BroadcastProgress(sessionID, step, total, message)
		}
	}

	result, err := analysis.Run(path, onProgress)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        sessionID,
		Result:    result,
		CreatedAt: time.Now(),
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()

	if sm.broadcaster != nil && sm.events {
		rep := result.Report(false)
		sm.broadcaster.BroadcastResult(sessionID, map[string]interface{}{
			"optimizedBundleCount": rep.Packing.OptimizedBundleCount,
			"bundleReduction":      rep.Packing.BundleReduction,
			"mergedPairs":          rep.Dependency.MergedPairs,
		})
	}

	return session, nil
}

// GetSession retrieves a session by ID.
func (sm *SessionManager) GetSession(sessionID string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// DestroySession removes a session by ID.
func (sm *SessionManager) DestroySession(sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[sessionID]; !exists {
		return ErrSessionNotFound
	}

	delete(sm.sessions, sessionID)
	return nil
}

// ListSessions returns all session IDs.
func (sm *SessionManager) ListSessions() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ids := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.sessions)
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
