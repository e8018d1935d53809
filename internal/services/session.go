package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

// Conversation stages.
const (
	StageDiscover     = 1
	StageConfirmMap   = 2
	StageConfirmCrawl = 3
	StageDrillDown    = 4
)

// HistoryEntry is one logged exchange line inside a session.
type HistoryEntry struct {
	ID   uuid.UUID
	Role string // "user" or "bot"
	Text string
	At   time.Time
}

// DrillState tracks the stage-4 option questioning sub-machine.
type DrillState struct {
	FirstKey        string
	FirstSelection  []string
	SecondKey       string
	SecondSelection []string
	AwaitingConfirm bool
	Round           int // 0 before the first question, 1 after it, 2 after the second
}

// Session is one user's conversation state. Callers must hold the user's lock
// (SessionStore.LockUser) while reading or mutating it.
type Session struct {
	Stage           int
	History         []HistoryEntry
	LastUserInput   string
	Recommendations RecommendationMap
	Selection       *SelectionTarget
	Spec            *SpecData
	Drill           DrillState
}

// Record appends one exchange line to the session history.
func (s *Session) Record(role, text string) {
	s.History = append(s.History, HistoryEntry{
		ID:   uuid.New(),
		Role: role,
		Text: text,
		At:   time.Now().UTC(),
	})
}

// ResetToDiscover drops everything except history and returns the session to
// the initial stage.
func (s *Session) ResetToDiscover() {
	s.Stage = StageDiscover
	s.LastUserInput = ""
	s.Recommendations = nil
	s.Selection = nil
	s.Spec = nil
	s.Drill = DrillState{}
}

// SessionStore holds in-memory per-user sessions. Turn handling for one user
// is serialized through LockUser; different users never contend.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
	log      *logger.Logger
}

func NewSessionStore(baseLog *logger.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
		log:      baseLog.With("service", "SessionStore"),
	}
}

// LockUser acquires the user's turn lock and returns the unlock func.
func (st *SessionStore) LockUser(userID string) func() {
	st.mu.Lock()
	lock, ok := st.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		st.locks[userID] = lock
	}
	st.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Get returns the user's session, creating a fresh stage-1 session on first
// contact. The caller must hold the user's lock.
func (st *SessionStore) Get(userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{Stage: StageDiscover}
		st.sessions[userID] = s
		st.log.Debug("session created", "user_id", userID)
	}
	return s
}

// Reset discards the user's session entirely, history included.
func (st *SessionStore) Reset(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
	st.log.Debug("session reset", "user_id", userID)
}
