package build

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	artifactapp "adsbuilder/internal/application/artifact"
	"adsbuilder/internal/domain/artifact"
	domain "adsbuilder/internal/domain/build"
	"adsbuilder/internal/domain/bulkcsv"
)

// Service owns stored builds and applies every change to them
type Service interface {
	Create(ctx context.Context, ownerID string, seed *domain.Build) (*domain.Record, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Record, error)
	List(ctx context.Context, ownerID string) ([]domain.Summary, error)
	Delete(ctx context.Context, ownerID, id string) error
	Replace(ctx context.Context, ownerID, id string, data []byte) (*domain.Record, error)
	Import(ctx context.Context, ownerID string, data []byte) (*domain.Record, error)
	Edit(ctx context.Context, ownerID, id string, op EditOp) (*domain.Record, error)
	SaveJSON(ctx context.Context, ownerID, id string) (string, []byte, error)
	ExportCSV(ctx context.Context, ownerID, id string) (string, []byte, error)
	Publish(ctx context.Context, ownerID, id string) (*artifact.PublishResult, error)
}

type service struct {
	repo      domain.Repository
	artifacts artifact.Repository
	limits    domain.Limits
	logger    *zap.Logger

	// mu serialises mutations so each edit sees the result of the previous one
	mu sync.Mutex
}

// NewService creates a new build service
func NewService(repo domain.Repository, artifacts artifact.Repository, limits domain.Limits, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		artifacts: artifacts,
		limits:    limits,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, seed *domain.Build) (*domain.Record, error) {
	b := domain.NewBuild(s.limits)
	if seed != nil {
		b = domain.Rebuild(seed, s.limits)
	}

	rec := &domain.Record{OwnerID: ownerID, Build: b}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create build: %w", err)
	}
	s.logger.Debug("build created", zap.String("build_id", rec.ID), zap.String("owner_id", ownerID))
	return rec, nil
}

func (s *service) Get(ctx context.Context, ownerID, id string) (*domain.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Builds of other owners are reported as missing
	if rec.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Summary, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.Summary, 0, len(records))
	for i := range records {
		summaries = append(summaries, records[i].ToSummary())
	}
	return summaries, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("build deleted", zap.String("build_id", id))
	return nil
}

// Replace loads data as the new content of build id. The stored build is
// only swapped once the whole document decodes.
func (s *service) Replace(ctx context.Context, ownerID, id string, data []byte) (*domain.Record, error) {
	b, err := domain.Decode(data, s.limits)
	if err != nil {
		s.logger.Warn("rejected build document", zap.String("build_id", id), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	rec.Build = b
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update build: %w", err)
	}
	s.logger.Debug("build replaced", zap.String("build_id", id), zap.Int("campaigns", len(b.Campaigns)))
	return rec, nil
}

func (s *service) Import(ctx context.Context, ownerID string, data []byte) (*domain.Record, error) {
	b, err := domain.Decode(data, s.limits)
	if err != nil {
		s.logger.Warn("rejected build document", zap.Error(err))
		return nil, err
	}

	rec := &domain.Record{OwnerID: ownerID, Build: b}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create build: %w", err)
	}
	s.logger.Debug("build imported", zap.String("build_id", rec.ID), zap.Int("campaigns", len(b.Campaigns)))
	return rec, nil
}

// Edit applies op to a copy of the stored tree and persists the copy. A
// failing op leaves the stored build unchanged.
func (s *service) Edit(ctx context.Context, ownerID, id string, op EditOp) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	next := rec.Build.Clone()
	if err := op.Apply(next, s.limits); err != nil {
		if !errors.Is(err, domain.ErrItemNotFound) {
			s.logger.Debug("edit refused", zap.String("build_id", id), zap.String("action", string(op.Action)), zap.Error(err))
		}
		return nil, err
	}

	rec.Build = next
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update build: %w", err)
	}
	s.logger.Debug("build edited", zap.String("build_id", id), zap.String("action", string(op.Action)))
	return rec, nil
}

func (s *service) SaveJSON(ctx context.Context, ownerID, id string) (string, []byte, error) {
	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", nil, err
	}
	data, err := domain.Encode(rec.Build)
	if err != nil {
		return "", nil, fmt.Errorf("encode build: %w", err)
	}
	return domain.JSONFileName(rec.Build), data, nil
}

func (s *service) ExportCSV(ctx context.Context, ownerID, id string) (string, []byte, error) {
	rec, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", nil, err
	}
	return domain.CSVFileName(rec.Build), []byte(bulkcsv.Export(rec.Build)), nil
}

// Publish writes the saved document and the bulk upload file of build id
// to the artifact store
func (s *service) Publish(ctx context.Context, ownerID, id string) (*artifact.PublishResult, error) {
	jsonName, jsonData, err := s.SaveJSON(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	csvName, csvData, err := s.ExportCSV(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	dir := artifactapp.Dir(ownerID, id)
	jsonFile, err := s.artifacts.Save(dir, jsonName, jsonData)
	if err != nil {
		s.logger.Error("failed to publish build", zap.String("build_id", id), zap.Error(err))
		return nil, err
	}
	csvFile, err := s.artifacts.Save(dir, csvName, csvData)
	if err != nil {
		s.logger.Error("failed to publish build", zap.String("build_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("build published",
		zap.String("build_id", id),
		zap.String("json", jsonFile.Path),
		zap.String("csv", csvFile.Path),
	)
	return &artifact.PublishResult{JSON: *jsonFile, CSV: *csvFile}, nil
}
