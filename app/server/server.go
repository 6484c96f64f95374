package server

import (
	"context"
	"fmt"

	"screenmate/app/client/provider"
	"screenmate/app/config"
	"screenmate/app/service/session"
	"screenmate/app/service/turn"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// 10mb body limit, frame payloads arrive as base64 JSON
const bodyLimit = 10 * 1024 * 1024

// Server is the HTTP face of the assistant: four stateless provider relays,
// the session API and the static UI.
type Server struct {
	cfg      *config.Config
	client   *provider.Client
	sessions *session.Manager
	turns    *turn.Controller
	app      *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:      do.MustInvoke[*config.Config](di),
		client:   do.MustInvoke[*provider.Client](di),
		sessions: do.MustInvoke[*session.Manager](di),
		turns:    do.MustInvoke[*turn.Controller](di),
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Post("/analyze", s.handleAnalyze)
	app.Post("/chat", s.handleChat)
	app.Post("/transcribe", s.handleTranscribe)
	app.Post("/tts", s.handleTTS)

	api := app.Group("/api/session")
	api.Post("/start", s.handleSessionStart)
	api.Post("/stop", s.handleSessionStop)
	api.Post("/frame", s.handleSessionFrame)
	api.Post("/message", s.handleSessionMessage)
	api.Get("/history", s.handleSessionHistory)

	app.Static("/", "./public")

	s.app = app

	return s, nil
}

// Run serves until the context is cancelled, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Server.Port))
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.app.Shutdown()
	})

	return g.Wait()
}
