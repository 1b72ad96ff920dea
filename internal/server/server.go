package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/health-keeper/internal/config"
	myHTTP "github.com/MKhiriev/health-keeper/internal/handler/http"
	"github.com/MKhiriev/health-keeper/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	// onShutdown hooks run after the transports stop, before run returns.
	onShutdown []func()
}

// NewServer builds the transport orchestrator. Shutdown hooks are invoked in
// order once all transports have stopped, giving background workers a place
// to terminate.
func NewServer(handler *myHTTP.Handler, cfg config.Server, logger *logger.Logger, onShutdown ...func()) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := new(server)

	if cfg.HTTPAddress != "" {
		servers.httpServer = newHTTPServer(handler.Init(), cfg, logger)
	}

	if servers.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	servers.logger = logger
	servers.onShutdown = onShutdown

	return servers, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	for _, hook := range s.onShutdown {
		hook()
	}
}

func (s *server) run() error {
	if s.httpServer == nil {
		return errNoServersAreCreated
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
