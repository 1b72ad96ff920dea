package workers

import (
	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewSessionSweeper(services.SessionService, cfg.Sessions.SweepInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop shuts down every worker that supports it.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if stoppable, ok := worker.(StoppableWorker); ok {
			stoppable.Stop()
		}
	}
}
