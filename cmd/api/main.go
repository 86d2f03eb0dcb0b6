package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"harborview.org/internal/audit"
	"harborview.org/internal/auth"
	"harborview.org/internal/config"
	"harborview.org/internal/hotel"
	"harborview.org/internal/httpapi"
	"harborview.org/internal/identity"
	"harborview.org/internal/mailer"
	"harborview.org/internal/obs"
	"harborview.org/internal/provider"
)

var version = "0.3.1"

func main() {
	obs.Init()
	log := obs.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.PostgresDSN == "" {
		log.Fatal().Msg("HARBORVIEW_PG_DSN is required")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	signer, err := auth.NewSigner(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("build signer")
	}

	idents := identity.NewPGStore(db)
	hotelStore := hotel.NewPGStore(db)

	var mail mailer.Sender
	if cfg.MailEnabled() {
		mail = mailer.New(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP not configured; notification routes will fail")
	}

	var google provider.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = provider.NewGoogle(cfg.GoogleClientID)
	}

	ready := httpapi.ReadyProbe{DB: db}
	api := httpapi.New(cfg, httpapi.Deps{
		Identities: idents,
		Hotel:      hotelStore,
		Signer:     signer,
		Recorder:   audit.NewRecorder(idents, log),
		Mailer:     mail,
		Google:     google,
		Ready:      ready,
		Version:    version,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, httpapi.NewGRPCServer(ready, version))

	log.Info().Str("http", cfg.HTTPAddr).Str("grpc", cfg.GRPCAddr).Str("version", version).Msg("starting harborview-api")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http listen")
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("grpc listen")
		}
		if err := grpcSrv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	grpcSrv.GracefulStop()
	_ = db.Close()
	log.Info().Msg("stopped")
}
