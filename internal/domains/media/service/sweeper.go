package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"studio/config"
	"studio/infras/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper periodically removes temp uploads left behind by interrupted requests.
type Sweeper interface {
	Start() error
	Stop()
	// Sweep removes temp files older than the configured TTL and returns how many were removed.
	Sweep(now time.Time) (int, error)
}

type sweeperImpl struct {
	cfg       *config.Config
	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewSweeper(cfg *config.Config) Sweeper {
	return &sweeperImpl{
		cfg:  cfg,
		cron: cron.New(),
	}
}

func (s *sweeperImpl) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	schedule := s.cfg.Storage.Sweeper.Schedule
	if schedule == "" {
		log.Info().Msg("Temp upload sweeper disabled")

		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		removed, err := s.Sweep(time.Now())
		if err != nil {
			log.Error().Err(err).Msg("Temp upload sweep failed")

			return
		}

		if removed > 0 {
			log.Info().Int("removed", removed).Msg("Temp upload sweep completed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule temp upload sweeper: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	log.Info().Str("schedule", schedule).Msg("Temp upload sweeper started")

	return nil
}

func (s *sweeperImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false

	log.Info().Msg("Temp upload sweeper stopped")
}

func (s *sweeperImpl) Sweep(now time.Time) (int, error) {
	dir := s.cfg.Storage.TempDir
	ttl := time.Duration(s.cfg.Storage.Sweeper.TTLMinutes) * time.Minute

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read temp dir: %w", err)
	}

	prefix, _, _ := strings.Cut(tempPattern, "*")
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || now.Sub(info.ModTime()) < ttl {
			continue
		}

		if err = os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to remove stale temp upload")

			continue
		}

		removed++
	}

	metrics.RecordSweptFiles(removed)

	return removed, nil
}
