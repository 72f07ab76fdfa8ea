package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/slayscreens/showdesk/internal/config"
	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/storage"
)

// Service periodically snapshots every collection into a timestamped
// JSON file so a damaged store can be restored by hand.
type Service struct {
	backend storage.Backend
	config  config.BackupConfig
	logger  *zerolog.Logger
}

func NewService(backend storage.Backend, cfg config.BackupConfig, logger *zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		config:  cfg,
		logger:  logger,
	}
}

func (s *Service) Start(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info().Msg("Backup service is disabled")
		return
	}

	s.logger.Info().Str("schedule", s.config.Schedule).Msg("Backup service started")

	interval := 24 * time.Hour
	if s.config.Schedule != "" {
		if d, err := time.ParseDuration(s.config.Schedule); err == nil {
			interval = d
		} else {
			s.logger.Warn().Err(err).Str("schedule", s.config.Schedule).Msg("Failed to parse backup schedule, using default 24h")
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run first backup immediately
	if err := s.PerformBackup(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Initial backup failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PerformBackup(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Scheduled backup failed")
			}
			s.CleanupOldBackups()
		}
	}
}

// PerformBackup writes one JSON document holding the raw payload of
// every collection key. Keys that were never written are skipped.
func (s *Service) PerformBackup(ctx context.Context) error {
	if _, err := os.Stat(s.config.StoragePath); os.IsNotExist(err) {
		if err := os.MkdirAll(s.config.StoragePath, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(s.config.StoragePath, fmt.Sprintf("collections_%s.json", timestamp))

	s.logger.Info().Str("path", backupPath).Msg("Performing collections backup")

	snapshot := make(map[string]json.RawMessage)
	for _, key := range models.AllKeys() {
		value, err := s.backend.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read collection %q: %w", key, err)
		}
		if !json.Valid(value) {
			// Still capture it: a backup of a corrupt payload beats no backup.
			s.logger.Warn().Str("key", key).Msg("Collection payload is not valid JSON, storing as string")
			raw, _ := json.Marshal(string(value))
			snapshot[key] = raw
			continue
		}
		snapshot[key] = json.RawMessage(value)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	s.logger.Info().Int("collections", len(snapshot)).Msg("Backup completed successfully")
	return nil
}

func (s *Service) CleanupOldBackups() {
	if s.config.RetentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(s.config.StoragePath)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read backup directory for cleanup")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", file.Name()).Msg("Deleting old backup")
			os.Remove(filepath.Join(s.config.StoragePath, file.Name()))
		}
	}
}
