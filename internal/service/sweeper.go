package service

import (
	"context"
	"log/slog"

	"github.com/Motalib01/Ihjizely-sub000/pkg/clock"
)

// Sweeper reclaims confirmed bookings whose stay has ended. It holds no
// storage access of its own; everything goes through the lifecycle manager.
type Sweeper struct {
	svc *BookingSvc
	clk clock.Clock
	log *slog.Logger
}

func NewSweeper(svc *BookingSvc, clk clock.Clock, log *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, clk: clk, log: log}
}

// Run is one sweep. Wired as a scheduler job.
func (s *Sweeper) Run(ctx context.Context) error {
	n, err := s.svc.ExpireOverdue(ctx, s.clk.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("bookings completed by sweep", "count", n)
	}
	return nil
}
