package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brewpair/configs"
	"brewpair/pkg/broker"
	"brewpair/pkg/logger"
	"brewpair/repository"
	"brewpair/routes"
	"brewpair/services"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var log = logging.MustGetLogger("main")

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "brewpair",
		Short: "brewpair - QR cafe menu with coffee and pastry pairings",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional config file (yaml, json, toml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads config, sets up logging and opens a migrated database.
func bootstrap() (*configs.Config, *gorm.DB, error) {
	cfg, err := configs.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Warningf("unknown LOG_LEVEL %q, using INFO", cfg.LogLevel)
	}

	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := bootstrap(); err != nil {
				return err
			}
			log.Info("schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and the Gloria Jeans demo shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := configs.SeedAdmin(db, cfg); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			shop, err := configs.SeedDemo(db)
			if err != nil {
				return fmt.Errorf("seed demo: %w", err)
			}
			log.Infof("demo shop ready: /qr/%s", shop.QRCode)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			return serve(cfg, db)
		},
	}
}

func serve(cfg *configs.Config, db *gorm.DB) error {
	if err := configs.SeedAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if cfg.SeedDemo {
		if _, err := configs.SeedDemo(db); err != nil {
			return fmt.Errorf("seed demo: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub *broker.Publisher
	if cfg.AMQPURL != "" {
		p, err := broker.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			// analytics fan-out is optional; the service runs without it
			log.Errorf("amqp disabled: %v", err)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	// closed before the publisher so queued events still reach it
	tracker := services.NewTracker(repository.NewEventRepository(db), cfg.TrackerBuffer, cfg.TrackerWorkers)
	defer tracker.Close()
	if pub != nil {
		tracker.AddSink(pub)
		log.Infof("publishing analytics events to exchange %q", cfg.AMQPExchange)
	}

	r := gin.Default()
	hub, err := routes.RegisterRoutes(r, db, cfg, tracker)
	if err != nil {
		return err
	}
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Infof("server running at %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
