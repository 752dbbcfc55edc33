package main

import (
	"context"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/sparring/go/internal/events"
	"github.com/mcdev12/sparring/go/internal/gateway"
	"github.com/mcdev12/sparring/go/internal/responder"
	"github.com/mcdev12/sparring/go/internal/session"
	"github.com/rs/zerolog/log"
)

// Services holds the wired application components.
type Services struct {
	Sessions          *session.Service
	App               *session.App
	Bus               *events.Bus
	ConnectionManager *gateway.ConnectionManager
	WebSocket         *gateway.WebSocketHandler
	NATSPublisher     *events.NATSPublisher
}

func setupServices(ctx context.Context, cfg *Config) *Services {
	// Wire up dependency injection chain
	// Repository layer → App layer → Service layer, with the event bus
	// fanning out to the websocket gateway and optionally NATS.

	bus := events.NewBus(1024)

	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	consumer := gateway.NewEventConsumer(connectionManager)
	bus.Subscribe(consumer.HandleEvent)

	var natsPublisher *events.NATSPublisher
	if cfg.NATS.URL != "" {
		publisher, err := events.NewNATSPublisher(ctx, cfg.NATS.URL)
		if err != nil {
			log.Error().Err(err).Str("nats_url", cfg.NATS.URL).Msg("NATS unavailable; events stay in-process")
		} else {
			bus.Subscribe(publisher.HandleEvent)
			natsPublisher = publisher
			log.Info().Str("nats_url", cfg.NATS.URL).Msg("mirroring session events to NATS")
		}
	}

	responderClient := responder.NewClient(
		cfg.Responder.BaseURL,
		os.Getenv("RESPONDER_API_KEY"),
		time.Duration(cfg.Responder.TimeoutSec)*time.Second,
	)

	repo := session.NewRepository()
	app := session.NewApp(repo, responderClient, bus, clockwork.NewRealClock(),
		time.Duration(cfg.Responder.TimeoutSec)*time.Second,
		session.Defaults{
			Rounds:       cfg.DefaultRounds(),
			SoundEnabled: cfg.Session.SoundEnabled,
		})
	sessionService := session.NewService(app)

	return &Services{
		Sessions:          sessionService,
		App:               app,
		Bus:               bus,
		ConnectionManager: connectionManager,
		WebSocket:         gateway.NewWebSocketHandler(connectionManager),
		NATSPublisher:     natsPublisher,
	}
}
