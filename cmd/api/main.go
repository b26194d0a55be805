package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhishek-kr07/quickdesk/internal/config"
	"github.com/abhishek-kr07/quickdesk/internal/database"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
	"github.com/abhishek-kr07/quickdesk/internal/repository/memory"
	"github.com/abhishek-kr07/quickdesk/internal/repository/postgres"
	"github.com/abhishek-kr07/quickdesk/internal/router"
	"github.com/abhishek-kr07/quickdesk/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// stores
	var stores repository.Stores
	switch cfg.Store {
	case "memory":
		s := memory.NewStore().Seed()
		stores = repository.Stores{
			Tickets:    s.Tickets(),
			Comments:   s.Comments(),
			Users:      s.Users(),
			Categories: s.Categories(),
		}
		l.Info().Msg("using in-memory store with seed data")
	default:
		pool, err := database.Open(context.Background(), cfg)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
			l.Fatal().Err(err).Msg("schema setup failed")
		}
		stores = repository.Stores{
			Tickets:    postgres.NewTicketRepo(pool),
			Comments:   postgres.NewCommentRepo(pool),
			Users:      postgres.NewUserRepo(pool),
			Categories: postgres.NewCategoryRepo(pool),
		}
	}

	// http
	r := router.New(l, stores, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
