package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/slays/internal/config"
	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/db"
	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/game/slay"
	"github.com/udisondev/slays/internal/game/slaycache"
	"github.com/udisondev/slays/internal/lore"
	"github.com/udisondev/slays/internal/model"
	"github.com/udisondev/slays/internal/server"
)

const ConfigPath = "config/slayd.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env необязателен
	_ = godotenv.Load()

	cfgPath := ConfigPath
	if p := os.Getenv("SLAYS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSlayd(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("slayd starting", "log_level", cfg.LogLevel, "config", cfgPath)

	data.UseDir(cfg.DataDir)
	if err := data.LoadAll(); err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	var (
		database *db.DB
		repo     lore.Repository
	)
	if cfg.Database.Enabled {
		database, err = db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		repo = db.NewLoreRepository(database.Pool())
	}

	book, err := lore.NewBook(repo, cfg.Lore.CacheSize)
	if err != nil {
		return fmt.Errorf("creating lore book: %w", err)
	}
	races := data.AllRaces()
	if err := book.Warm(ctx, races); err != nil {
		return fmt.Errorf("warming lore: %w", err)
	}

	matcher := slay.NewMatcher(data.Slays, nil)

	cache := slaycache.Build(data.EgoTable, model.SlayMask())
	if err := cache.Compute(ctx, cfg.Cache.Workers, func(_ context.Context, combo flags.Set) (int32, error) {
		return matcher.Power(combo, races), nil
	}); err != nil {
		return fmt.Errorf("computing slay values: %w", err)
	}

	deps := server.Deps{Matcher: matcher, Cache: cache, Book: book}
	if database != nil {
		deps.DB = database
	}
	srv := server.NewServer(cfg.HTTP.Addr(), deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		return flushLoop(gctx, book, cfg.Lore.FlushInterval)
	})

	err = g.Wait()

	// Последний сброс лора уже после остановки, на свежем контексте.
	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if ferr := book.Flush(flushCtx); ferr != nil {
		slog.Error("final lore flush", "err", ferr)
	}

	slog.Info("slayd stopped")
	return err
}

func flushLoop(ctx context.Context, book *lore.Book, every time.Duration) error {
	if every <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := book.Flush(ctx); err != nil {
				slog.Warn("lore flush failed, will retry", "err", err)
			}
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
