package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/storage"
)

var ErrBackupsDisabled = errors.New("backups are not configured")

const backupLinkExpiry = time.Hour

type BackupResult struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

type ExportService struct {
	goals               *GoalService
	profileRepo         repository.ProfileRepository
	lessonRepo          repository.LessonProgressRepository
	challengeRepo       repository.ChallengeRepository
	maintenance         repository.MaintenanceRepository
	store               kv.Store
	gamification        *GamificationService
	subscriptionService *SubscriptionService
	storage             storage.Storage // nil when backups are not configured
	clock               Clock
}

func NewExportService(
	goals *GoalService,
	profileRepo repository.ProfileRepository,
	lessonRepo repository.LessonProgressRepository,
	challengeRepo repository.ChallengeRepository,
	maintenance repository.MaintenanceRepository,
	store kv.Store,
	gamification *GamificationService,
	subscriptionService *SubscriptionService,
	storage storage.Storage,
	clock Clock,
) *ExportService {
	return &ExportService{
		goals:               goals,
		profileRepo:         profileRepo,
		lessonRepo:          lessonRepo,
		challengeRepo:       challengeRepo,
		maintenance:         maintenance,
		store:               store,
		gamification:        gamification,
		subscriptionService: subscriptionService,
		storage:             storage,
		clock:               clock,
	}
}

// Snapshot gathers everything the user has recorded, archived goals included.
func (s *ExportService) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		ExportedAt:   s.clock.Now().UTC(),
		Gamification: s.gamification.State(),
	}

	profile, err := s.profileRepo.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
	case err != nil:
		return nil, err
	default:
		snap.Profile = profile
	}

	goals, err := s.goals.Goals(ctx, true)
	if err != nil {
		return nil, err
	}
	snap.Goals = make([]*model.Goal, 0, len(goals))
	for _, g := range goals {
		snap.Goals = append(snap.Goals, g.Goal)
	}

	if snap.Entries, err = s.goals.AllEntries(ctx); err != nil {
		return nil, err
	}
	if snap.Lessons, err = s.lessonRepo.All(ctx); err != nil {
		return nil, err
	}
	if snap.Challenges, err = s.challengeRepo.All(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}

// Export is the premium JSON download.
func (s *ExportService) Export(ctx context.Context) (*model.Snapshot, error) {
	err := s.subscriptionService.RequireFeature(ctx, model.FeatureExport)
	if err != nil {
		return nil, err
	}
	return s.Snapshot(ctx)
}

// Backup uploads a snapshot to backups/<timestamp>.json.
func (s *ExportService) Backup(ctx context.Context) (*BackupResult, error) {
	if s.storage == nil {
		return nil, ErrBackupsDisabled
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("backups/%s.json", snap.ExportedAt.Format("20060102T150405Z"))
	err = s.storage.Save(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}

	result := &BackupResult{Key: key}
	url, err := s.storage.PresignedURL(ctx, key, backupLinkExpiry)
	if err != nil {
		slog.Warn("backup saved without download link", "key", key, "error", err)
	} else {
		result.URL = url
	}

	slog.Info("backup written", "key", key, "goals", len(snap.Goals), "entries", len(snap.Entries))
	return result, nil
}

// Reset deletes every row and scalar, then clears the in-memory state.
func (s *ExportService) Reset(ctx context.Context) error {
	err := s.maintenance.Wipe(ctx)
	if err != nil {
		return fmt.Errorf("failed to wipe data: %w", err)
	}

	err = s.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	s.gamification.Reset()
	slog.Info("all data reset")
	return nil
}

// Counts reports rows per table for diagnostics.
func (s *ExportService) Counts(ctx context.Context) (map[string]int, error) {
	return s.maintenance.Counts(ctx)
}
