package repository

import (
	"testing"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/pkg/config"
	"family-gifts/pkg/db"
	"family-gifts/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserRepoTest(t *testing.T) *UserRepository {
	t.Helper()
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if logger.L == nil {
		if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
			t.Logf("Logger init failed (using default): %v", err)
		}
	}
	require.NoError(t, db.InitDB(), "Failed to connect to test database")

	cleanup := func() {
		if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&model.User{}).Error; err != nil {
			t.Logf("Warning: failed to cleanup users table: %v", err)
		}
	}
	cleanup()
	t.Cleanup(cleanup)

	return NewUserRepository()
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := setupUserRepoTest(t)

	user := &model.User{Name: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, repo.Create(user))
	require.True(t, user.ID > 0)

	found, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// A second insert racing past the service's pre-check must come back as a
// conflict, not a raw driver error.
func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo := setupUserRepoTest(t)

	require.NoError(t, repo.Create(&model.User{Name: "bob", Email: "bob@example.com", Password: "x"}))

	err := repo.Create(&model.User{Name: "bob2", Email: "bob@example.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
