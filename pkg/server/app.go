package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TradeRadar/internal/domain/repository"
	"TradeRadar/internal/service/binance"
	"TradeRadar/internal/usecase"
	"TradeRadar/pkg/config"
	xhttp "TradeRadar/pkg/http"
	applogger "TradeRadar/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP query surface,
// optional live trade stream and graceful shutdown.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	radar      *usecase.Radar
	handler    xhttp.Handler
	stream     *binance.Stream
	publisher  repository.EventPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	radar *usecase.Radar,
	handler xhttp.Handler,
	stream *binance.Stream,
	publisher repository.EventPublisher,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		radar:     radar,
		handler:   handler,
		stream:    stream,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.stream != nil {
		go a.runStream(ctx)
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// runStream connects the live tape and subscribes to the current top
// picks so whale scans can read from memory.
func (a *App) runStream(ctx context.Context) {
	if err := a.stream.Connect(ctx); err != nil {
		a.log.Warn("stream connect failed, whale scans stay on REST", applogger.Error(err))
		return
	}
	a.radar.SetTapeReader(a.stream)

	top := a.radar.TopPicks(ctx, false)
	pairs := make([]string, 0, len(top.Picks))
	for _, p := range top.Picks {
		pairs = append(pairs, p.PairID)
	}
	if err := a.stream.Subscribe(pairs); err != nil {
		a.log.Warn("stream subscribe failed", applogger.Error(err))
	}

	a.stream.Run(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			a.log.Warn("stream close error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
