package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "adsbuilder/internal/domain/artifact"
	"adsbuilder/internal/infrastructure/repository"
)

func newTestService(t *testing.T) (Service, domain.Repository) {
	t.Helper()
	repo, err := repository.NewFilesystemRepository(t.TempDir())
	require.NoError(t, err)
	return NewService(repo), repo
}

func TestService_ScopedToOwner(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := repo.Save(Dir("ana", "b1"), "acme.json", []byte("{}"))
	require.NoError(t, err)
	_, err = repo.Save(Dir("bob", "b2"), "other.json", []byte("{}"))
	require.NoError(t, err)

	files, err := svc.List("ana")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "b1/acme.json", files[0].Path)

	stats, err := svc.GetStats("ana")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFiles)
	assert.Equal(t, "b1/acme.json", stats.RecentFiles[0].Path)

	_, err = svc.GetFileForDownload("ana", "b1/acme.json")
	assert.NoError(t, err)

	// climbing out of the owner folder stays inside it
	_, err = svc.GetFileForDownload("ana", "../bob/b2/other.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, repo := newTestService(t)
	_, err := repo.Save(Dir("ana", "b1"), "acme.json", []byte("{}"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete("ana", ""), domain.ErrRootDeletion)
	assert.ErrorIs(t, svc.Delete("ana", "/"), domain.ErrRootDeletion)
	require.NoError(t, svc.Delete("ana", "b1/acme.json"))
	assert.ErrorIs(t, svc.Delete("ana", "b1/acme.json"), domain.ErrNotFound)

	_, err = svc.List("")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}
