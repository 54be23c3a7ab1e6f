package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/rs/zerolog/log"

	"github.com/ladelicato/salesbot/bot"
	"github.com/ladelicato/salesbot/store"
)

// Server is the dashboard-facing HTTP surface. It only ever reads the
// collections the reply loop writes, plus the manual sale entry/edit
// endpoints that go through the same store.
type Server struct {
	app       *fiber.App
	store     store.Store
	status    *bot.Status
	unitPrice float64
}

func New(st store.Store, status *bot.Status, dashboardOrigin string, unitPrice float64) *Server {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{dashboardOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	server := &Server{
		app:       app,
		store:     st,
		status:    status,
		unitPrice: unitPrice,
	}

	server.setupRoutes()

	return server
}

func (s *Server) Start(port string) {
	log.Info().Str("port", port).Msg("Starting dashboard server")

	err := s.app.Listen(":"+port, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
