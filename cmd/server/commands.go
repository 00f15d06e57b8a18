package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"medinbox/internal/config"
	"medinbox/internal/httpserver"
	"medinbox/internal/inbox"
	"medinbox/internal/logger"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path := c.String("fixtures"); path != "" {
		cfg.FixturesPath = path
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Dev())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			sess, err := bootstrap(c.Context, cfg, log, clock(cfg.Location, time.Time{}))
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         cfg.HTTPAddr(),
				Handler:      httpserver.NewRouter(cfg, sess.services, sess.metrics, log),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				log.Info("starting server", zap.String("addr", cfg.HTTPAddr()), zap.String("env", cfg.Env))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			// Graceful shutdown
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errc:
				return err
			case <-stop:
			}

			log.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Warn("graceful shutdown failed", zap.Error(err))
			}
			return nil
		},
	}
}

func nowFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "now",
		Usage: "Evaluate relative to `TIME` (RFC3339) instead of the wall clock",
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print inbox counters for the seed data",
		Flags: []cli.Flag{nowFlag()},
		Action: func(c *cli.Context) error {
			sess, err := offlineSession(c)
			if err != nil {
				return err
			}
			stats, err := sess.services.Conversations.Stats(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c, stats)
		},
	}
}

func inboxCommand() *cli.Command {
	return &cli.Command{
		Name:  "inbox",
		Usage: "Print the filtered conversation list for the seed data",
		Flags: []cli.Flag{
			nowFlag(),
			&cli.StringFlag{Name: "q", Usage: "Search text"},
			&cli.StringFlag{Name: "status", Usage: "all, unread or urgent", Value: string(inbox.StatusAll)},
			&cli.StringFlag{Name: "tab", Usage: "all, urgent or today", Value: string(inbox.TabAll)},
		},
		Action: func(c *cli.Context) error {
			status, err := inbox.ParseStatusFilter(c.String("status"))
			if err != nil {
				return err
			}
			tab, err := inbox.ParseTabFilter(c.String("tab"))
			if err != nil {
				return err
			}
			sess, err := offlineSession(c)
			if err != nil {
				return err
			}
			cards, err := sess.services.Conversations.Inbox(c.Context, inbox.Query{Text: c.String("q"), Status: status, Tab: tab})
			if err != nil {
				return err
			}
			return printJSON(c, cards)
		},
	}
}

// offlineSession builds a session for one-shot commands with a silent logger.
func offlineSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	at, err := parseNow(c.String("now"))
	if err != nil {
		return nil, err
	}
	return bootstrap(c.Context, cfg, zap.NewNop(), clock(cfg.Location, at))
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
