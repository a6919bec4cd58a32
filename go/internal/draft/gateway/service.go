package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Service is the draft gateway: a JetStream consumer feeding websocket
// clients plus the snapshot endpoint.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
	stateHandler      *StateHandler
}

// Config holds configuration for the draft gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the draft gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService creates a new draft gateway service
func NewService(ctx context.Context, config Config, stateProvider StateProvider, clock clockwork.Clock) (*Service, error) {
	cm := NewConnectionManager(config.ConnectionConfig, clock)

	consumer, err := NewEventConsumer(ctx, cm, config.JetStreamConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Service{
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm, stateProvider),
		eventConsumer:     consumer,
		stateHandler:      NewStateHandler(stateProvider),
	}, nil
}

// Start runs the connection manager and consumer until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting draft gateway service")

	go s.connectionManager.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.eventConsumer.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			s.eventConsumer.Stop()
			return err
		}
	}

	log.Info().Msg("draft gateway service shutting down")
	return s.eventConsumer.Stop()
}

// RegisterRoutes registers the websocket and state routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	log.Info().Msg("draft gateway routes registered")
}

// Stats returns statistics about the open connections
func (s *Service) Stats() ConnectionStats {
	return s.connectionManager.Stats()
}
