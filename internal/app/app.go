// Package app wires the server components together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blinko-space/blinko-server/internal/config"
	"github.com/blinko-space/blinko-server/internal/db"
	"github.com/blinko-space/blinko-server/internal/http/api"
	"github.com/blinko-space/blinko-server/internal/logging"
	"github.com/blinko-space/blinko-server/internal/oauth"
	"github.com/blinko-space/blinko-server/internal/settings"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Run boots the server and blocks until the context is canceled.
func Run(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	log.WithField("dialect", db.DialectName(conn)).Info("database ready")

	svc := settings.NewService(conn)
	oauthMgr := oauth.NewManager(svc)
	svc.Subscribe(oauthMgr)
	if errReinit := oauthMgr.Reinitialize(ctx); errReinit != nil {
		log.Warnf("initial oauth setup failed: %v", errReinit)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.RegisterRoutes(engine, conn, cfg.JWT, svc, oauthMgr)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if errServe := srv.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
	}()

	select {
	case errServe := <-errCh:
		return fmt.Errorf("app: serve: %w", errServe)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("app: shutdown: %w", errShutdown)
	}
	log.Info("server stopped")
	return nil
}
