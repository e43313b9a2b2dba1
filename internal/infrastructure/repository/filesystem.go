package repository

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"adsbuilder/internal/domain/artifact"
)

const recentArtifacts = 10

type filesystemRepository struct {
	basePath string
}

// NewFilesystemRepository creates an artifact store rooted at basePath
func NewFilesystemRepository(basePath string) (artifact.Repository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &filesystemRepository{basePath: basePath}, nil
}

// sanitizePath prevents directory traversal attacks
func sanitizePath(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	cleaned = strings.TrimPrefix(cleaned, string(filepath.Separator))
	if cleaned == "." || cleaned == "" {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", artifact.ErrInvalidPath
	}
	return cleaned, nil
}

func (r *filesystemRepository) fullPath(relativePath string) (string, error) {
	sanitized, err := sanitizePath(relativePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.basePath, sanitized), nil
}

func (r *filesystemRepository) Save(dir, name string, data []byte) (*artifact.Artifact, error) {
	target, err := r.fullPath(dir)
	if err != nil {
		return nil, err
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return nil, artifact.ErrInvalidPath
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, artifact.ErrWriteFailed
	}

	destPath := filepath.Join(target, name)
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return nil, artifact.ErrWriteFailed
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, artifact.ErrWriteFailed
	}
	return r.toArtifact(destPath, info), nil
}

// List walks dir recursively and returns every file, newest first
func (r *filesystemRepository) List(dir string) ([]artifact.Artifact, error) {
	root, err := r.fullPath(dir)
	if err != nil {
		return nil, err
	}

	files := make([]artifact.Artifact, 0)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return fs.SkipAll
			}
			return nil // Skip files we can't access
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, *r.toArtifact(path, info))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (r *filesystemRepository) GetFilePath(relativePath string) (string, error) {
	full, err := r.fullPath(relativePath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return "", artifact.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", artifact.ErrIsDirectory
	}
	return full, nil
}

func (r *filesystemRepository) Delete(relativePath string) error {
	full, err := r.fullPath(relativePath)
	if err != nil {
		return err
	}

	// Prevent deleting the base storage directory
	absBase, _ := filepath.Abs(r.basePath)
	absFull, _ := filepath.Abs(full)
	if absBase == absFull {
		return artifact.ErrRootDeletion
	}

	if _, err := os.Stat(full); os.IsNotExist(err) {
		return artifact.ErrNotFound
	}
	if err := os.RemoveAll(full); err != nil {
		return artifact.ErrDeleteFailed
	}
	return nil
}

func (r *filesystemRepository) Stats(dir string) (*artifact.Stats, error) {
	files, err := r.List(dir)
	if err != nil {
		return nil, err
	}

	stats := &artifact.Stats{
		FilesByType: make(map[string]int64),
		RecentFiles: make([]artifact.Artifact, 0),
	}
	for _, f := range files {
		stats.TotalFiles++
		stats.TotalSize += f.Size

		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext == "" {
			ext = "no extension"
		}
		stats.FilesByType[ext]++
	}

	// files is already newest first
	if len(files) > recentArtifacts {
		stats.RecentFiles = files[:recentArtifacts]
	} else {
		stats.RecentFiles = files
	}
	return stats, nil
}

func (r *filesystemRepository) toArtifact(fullPath string, info fs.FileInfo) *artifact.Artifact {
	rel, _ := filepath.Rel(r.basePath, fullPath)
	return &artifact.Artifact{
		Name:    info.Name(),
		Path:    filepath.ToSlash(rel),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
