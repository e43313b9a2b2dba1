package artifact

import (
	"path"
	"strings"

	domain "adsbuilder/internal/domain/artifact"
)

// Service exposes an owner's published exports. Every path is relative to
// the owner's folder in the store.
type Service interface {
	List(ownerID string) ([]domain.Artifact, error)
	GetFileForDownload(ownerID, relativePath string) (string, error)
	Delete(ownerID, relativePath string) error
	GetStats(ownerID string) (*domain.Stats, error)
}

type service struct {
	repo domain.Repository
}

// NewService creates a new artifact service
func NewService(repo domain.Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ownerID string) ([]domain.Artifact, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidPath
	}
	files, err := s.repo.List(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i].Path = stripOwner(ownerID, files[i].Path)
	}
	return files, nil
}

func (s *service) GetFileForDownload(ownerID, relativePath string) (string, error) {
	full, err := ownerPath(ownerID, relativePath)
	if err != nil {
		return "", err
	}
	return s.repo.GetFilePath(full)
}

func (s *service) Delete(ownerID, relativePath string) error {
	full, err := ownerPath(ownerID, relativePath)
	if err != nil {
		return err
	}
	if full == ownerID {
		return domain.ErrRootDeletion
	}
	return s.repo.Delete(full)
}

func (s *service) GetStats(ownerID string) (*domain.Stats, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidPath
	}
	stats, err := s.repo.Stats(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range stats.RecentFiles {
		stats.RecentFiles[i].Path = stripOwner(ownerID, stats.RecentFiles[i].Path)
	}
	return stats, nil
}

// ownerPath joins relativePath under the owner folder, refusing paths that
// would climb out of it
func ownerPath(ownerID, relativePath string) (string, error) {
	if ownerID == "" {
		return "", domain.ErrInvalidPath
	}
	cleaned := path.Clean("/" + relativePath)
	return path.Join(ownerID, cleaned), nil
}

func stripOwner(ownerID, p string) string {
	return strings.TrimPrefix(p, ownerID+"/")
}

// Dir returns the store folder holding the published files of one build
func Dir(ownerID, buildID string) string {
	return path.Join(ownerID, buildID)
}
