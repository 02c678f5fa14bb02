package services_test

import (
	"path/filepath"
	"testing"

	"weight-tracker-backend/internal/blob"
	"weight-tracker-backend/internal/config"
	"weight-tracker-backend/internal/repository"
	"weight-tracker-backend/internal/services"

	"github.com/stretchr/testify/require"
)

// testEnv wires the full service stack over a temp-dir sqlite database and
// disk blob store.
type testEnv struct {
	users   *services.UserService
	weights *services.WeightService
	photos  *services.PhotoService
	dir     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := repository.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(dir, "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	blobs, err := blob.NewDiskStore(filepath.Join(dir, "photos"))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	return &testEnv{
		users:   services.NewUserService(userRepo, blobs),
		weights: services.NewWeightService(userRepo, weightRepo),
		photos:  services.NewPhotoService(userRepo, photoRepo, blobs),
		dir:     dir,
	}
}

func (e *testEnv) photoPath(imagePath string) string {
	return filepath.Join(e.dir, "photos", imagePath)
}

func requireErrorKind[T error](t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var kind T
	require.ErrorAs(t, err, &kind)
}
