package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medinbox/internal/config"
	"medinbox/internal/fixtures"
	"medinbox/internal/httpserver"
	"medinbox/internal/metrics"
	"medinbox/internal/service"
	"medinbox/internal/store/memory"
	"medinbox/internal/timefmt"
)

// session is one seeded, fully wired process state.
type session struct {
	services httpserver.Services
	metrics  *metrics.Metrics
}

// bootstrap loads fixtures relative to now, seeds a fresh store and builds
// the services. When cfg has no session user, the fixture's is adopted.
func bootstrap(ctx context.Context, cfg *config.Config, log *zap.Logger, now func() time.Time) (*session, error) {
	ds, err := fixtures.Load(cfg.FixturesPath, now())
	if err != nil {
		return nil, err
	}
	if cfg.SessionUserID == "" {
		cfg.SessionUserID = ds.SessionUserID
	}
	ds.ViewAs(cfg.SessionUserID)

	repos := memory.Open().Repositories()
	if err := fixtures.Seed(ctx, ds, repos.Users, repos.Teams, repos.Patients, repos.Conversations); err != nil {
		return nil, err
	}
	log.Info("fixtures loaded",
		zap.String("path", cfg.FixturesPath),
		zap.Int("users", len(ds.Users)),
		zap.Int("conversations", len(ds.Conversations)),
		zap.String("session_user", cfg.SessionUserID))

	m := metrics.New()
	formatter := timefmt.New(timefmt.LabelsFor(cfg.TimeLabels))

	userSvc := service.NewUserService(repos.Users)
	convSvc := service.NewConversationService(repos.Conversations, repos.Patients, repos.Teams, cfg.SessionUserID, formatter, log, m)
	convSvc.Now = now
	msgSvc := service.NewMessageService(repos.Conversations, userSvc, cfg.SessionUserID, log, m, cfg.MaxMessageLength)
	msgSvc.Now = now

	return &session{
		services: httpserver.Services{
			Users:         userSvc,
			Conversations: convSvc,
			Messages:      msgSvc,
		},
		metrics: m,
	}, nil
}

// clock returns a time source in loc, pinned to at when at is non-zero.
func clock(loc *time.Location, at time.Time) func() time.Time {
	if !at.IsZero() {
		pinned := at.In(loc)
		return func() time.Time { return pinned }
	}
	return func() time.Time { return time.Now().In(loc) }
}

func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now must be RFC3339: %w", err)
	}
	return t, nil
}
