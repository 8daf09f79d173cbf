// Package main is the entry point for the paste API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roguepikachu/pastebin/internal/config"
	"github.com/roguepikachu/pastebin/internal/http/handler"
	"github.com/roguepikachu/pastebin/internal/http/router"
	"github.com/roguepikachu/pastebin/internal/idgen"
	"github.com/roguepikachu/pastebin/internal/repository"
	"github.com/roguepikachu/pastebin/internal/service"
	"github.com/roguepikachu/pastebin/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger.InitLogging()
	config.InitConf()
	conf := config.Conf

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, conf)
	if err != nil {
		logger.Fatal(ctx, "failed to open %s store: %v", conf.StoreBackend, err)
	}
	defer st.Close()

	clock := service.RealClock{}
	svc := service.NewService(st.repo, clock,
		service.WithIDGenerator(idgen.New(conf.IDLength).Generate),
		service.WithTTL(conf.PasteTTL),
		service.WithMaxContentLength(conf.MaxContentLength),
		service.WithMaxIDAttempts(conf.IDMaxAttempts),
	)

	engine := router.NewRouter(handler.NewHandler(svc), handler.NewHealthHandler(st.health...), conf.BodyLimit())
	srv := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "paste server listening on :%s (store=%s)", conf.Port, conf.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if p, ok := st.repo.(repository.ExpiredPurger); ok {
		purger := service.NewPurger(p, clock, conf.PurgeInterval)
		g.Go(func() error { return purger.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info(shutdownCtx, "shutting down paste server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server stopped with error: %v", err)
		st.Close()
		os.Exit(1)
	}
}
