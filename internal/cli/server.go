package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixel-trivia-service/internal/app"
	"pixel-trivia-service/internal/config"
	"pixel-trivia-service/internal/infra/memory"
	pgcatalog "pixel-trivia-service/internal/infra/postgres"
	redisprefs "pixel-trivia-service/internal/infra/redis"
	"pixel-trivia-service/internal/logger"
	transport "pixel-trivia-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Content supply: the built-in dataset unless Postgres is configured.
	var loader memory.CatalogLoader = memory.DefaultCatalog()
	if pool != nil {
		loader = pgcatalog.NewCatalogLoader(pool)
	}
	catalogTTL := config.Duration(cfg.Catalog.TTL, 10*time.Minute)
	catalog := memory.NewCatalogRepository(loader, catalogTTL)

	// The leaderboard lives in memory for the life of the process, seeded
	// with the sample standings.
	board := memory.NewLeaderboardStore(memory.SeedLeaderboard()...)

	// Preferences are the only persisted values; Redis stands in for the
	// browser's localStorage when configured.
	var prefStore app.PreferenceStore = memory.NewPreferenceStore()
	if redisClient != nil {
		prefStore = redisprefs.NewPreferenceStore(redisClient)
	}
	prefs := app.NewPreferenceService(prefStore)

	finalizeDelay := config.Duration(cfg.Quiz.FinalizeDelay, app.DefaultFinalizeDelay)
	wsHandler := transport.NewWSHandler(catalog, board, prefs, log,
		transport.WithFinalizeDelay(finalizeDelay))
	apiHandler := transport.NewAPIHandler(catalog, board, prefs, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	apiHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", finalPort).Msg("starting pixel trivia service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
