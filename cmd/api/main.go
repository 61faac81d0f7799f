package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"golang.org/x/sync/errgroup"

	"github.com/saulo-duarte/goalie-lambda/internal/config"
	"github.com/saulo-duarte/goalie-lambda/internal/container"
)

// @title Goal Tracker API
// @version 2.0
// @description Savings goals with an append-only contribution ledger.
// @BasePath /
func main() {
	settings, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, settings)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build application")
	}
	defer c.Close()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		config.Logger.Info("Starting Lambda handler")
		lambda.Start(chiadapter.New(c.Router).ProxyWithContext)
		return
	}

	if err := serve(ctx, c.Router, ":"+settings.Port); err != nil {
		config.Logger.WithError(err).Fatal("Server stopped with error")
	}
}

func serve(ctx context.Context, handler http.Handler, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		config.Logger.WithField("addr", addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		config.Logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
