package session

import (
	"context"

	"screenmate/app/client/provider"
	"screenmate/app/config"
	"screenmate/app/service/sampler"

	"github.com/samber/do"
)

var _ do.Shutdownable = (*Manager)(nil)

// Manager holds the single active session. The session exists for the
// process lifetime so the conversation stays usable before capture starts
// and after it stops; StartCapture and StopCapture only toggle sampling.
type Manager struct {
	appCtx  context.Context
	current *Session
}

func New(di *do.Injector) (*Manager, error) {
	cfg := do.MustInvoke[*config.Config](di)
	client := do.MustInvoke[*provider.Client](di)

	sess := newSession()
	sess.sampler = sampler.New(cfg, sess, client, sess.History)

	return &Manager{
		appCtx:  do.MustInvoke[context.Context](di),
		current: sess,
	}, nil
}

func (m *Manager) Current() *Session {
	return m.current
}

// StartCapture begins periodic frame sampling.
func (m *Manager) StartCapture() *Session {
	m.current.sampler.Start(m.appCtx)
	return m.current
}

// StopCapture cancels the sampling task. History and the conversation stay
// readable; an analysis already in flight may still append a late entry.
func (m *Manager) StopCapture() {
	m.current.sampler.Stop()
}

func (m *Manager) Shutdown() error {
	m.current.sampler.Stop()
	return nil
}
