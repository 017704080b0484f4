package app

import (
	"context"

	"go.uber.org/zap"

	"vizvolt/internal/api"
	"vizvolt/internal/config"
	httpserver "vizvolt/internal/http"
	"vizvolt/internal/http/handlers"
	"vizvolt/internal/poller"
	"vizvolt/internal/repository"
	"vizvolt/libs/db"
)

// App wires ingestion service dependencies.
type App struct {
	server *httpserver.Server
	poller *poller.Poller
	logger *zap.Logger
}

// New constructs application components. No store connection is opened here:
// the poller opens and closes one per tick via the connect factory.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	fetcher := api.NewClient(cfg.API.URL, cfg.API.SecretKey, cfg.API.Timeout)

	dsn := cfg.DatabaseDSN()
	connect := func(ctx context.Context) (poller.Store, error) {
		sqlDB, err := db.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return repository.NewReadingRepository(sqlDB), nil
	}

	ingest := poller.New(fetcher, connect, cfg.Poll.Interval, logger)

	routes := httpserver.Routes{
		Health: handlers.NewHealthHandler(config.ServiceName),
	}
	server := httpserver.NewServer(cfg.HTTPAddress(), httpserver.NewRouter(routes), logger)

	return &App{
		server: server,
		poller: ingest,
		logger: logger,
	}, nil
}

// Run starts the poll loop and the health server as independent tasks sharing
// no state, and blocks until both stop. A failure in either cancels the other.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() { errCh <- a.server.Run(ctx) }()
	go func() { errCh <- a.poller.Run(ctx) }()

	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}
