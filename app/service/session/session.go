package session

import (
	"sync"
	"time"

	"screenmate/app/service/conversation"
	"screenmate/app/service/history"
	"screenmate/app/service/sampler"

	"github.com/google/uuid"
)

// Session owns all per-session state: the viewing history, the conversation
// log, the most recent pushed frame and the sampling task. State lives in
// memory only and is discarded when the process exits.
type Session struct {
	ID        string
	StartedAt time.Time

	History      *history.Store
	Conversation *conversation.Log

	mu       sync.RWMutex
	frame    sampler.Frame
	hasFrame bool

	sampler *sampler.Sampler
}

func newSession() *Session {
	return &Session{
		ID:           uuid.NewString(),
		StartedAt:    time.Now(),
		History:      history.NewStore(),
		Conversation: conversation.NewLog(),
	}
}

// PushFrame replaces the most recent captured frame.
func (s *Session) PushFrame(frame sampler.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = frame
	s.hasFrame = true
}

// CurrentFrame implements sampler.FrameSource.
func (s *Session) CurrentFrame() (sampler.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.frame, s.hasFrame
}
