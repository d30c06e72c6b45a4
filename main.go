package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"academy_backend/internals/configs"
	database "academy_backend/internals/databases"
	"academy_backend/internals/features/certificates/layout"
	middlewares "academy_backend/internals/middlewares"
	routes "academy_backend/internals/route"
	"academy_backend/internals/seeds"
)

func main() {
	root := &cobra.Command{
		Use:   "academy",
		Short: "Academy certificate service",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := maxprocs.Set(maxprocs.Logger(log.Printf)); err != nil {
				log.Printf("[WARN] automaxprocs: %v", err)
			}
			cfg := configs.LoadEnv()
			log.Printf("[INFO] env=%s db=%s port=%s", cfg.Environment, cfg.DBDriver, cfg.Port)
			return database.ConnectDB(cfg)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configs.App)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configs.App)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run AutoMigrate for all models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.AutoMigrate(database.DB); err != nil {
				return err
			}
			log.Println("✅ Migration done.")
			return nil
		},
	})

	var withMigrate bool
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed default certificate templates from YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if withMigrate {
				if err := database.AutoMigrate(database.DB); err != nil {
					return err
				}
			}
			return seeds.RunAllSeeds(cmd.Context(), database.DB, configs.App)
		},
	}
	seedCmd.Flags().BoolVar(&withMigrate, "migrate", false, "run AutoMigrate before seeding")
	root.AddCommand(seedCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cfg configs.AppConfig) error {
	layout.Configure(cfg.CertFontPath, cfg.CertBoldFontPath)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 pool + warm-up
	if !cfg.IsProduction() {
		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
	}
	database.TunePool()
	database.WarmUpQueries()

	routes.SetupRoutes(app, database.DB, cfg, layout.Default())

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("👋 Server stopped.")
	return nil
}
