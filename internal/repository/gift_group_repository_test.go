package repository

import (
	"testing"

	"family-gifts/internal/model"
	"family-gifts/pkg/config"
	"family-gifts/pkg/db"
	"family-gifts/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupGiftGroupTest initializes config, logger and the test database and
// registers table cleanup.
func setupGiftGroupTest(t *testing.T) (*GiftGroupRepository, *UserRepository) {
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
		for _, m := range []interface{}{
			&model.Message{},
			&model.GiftGroupMember{},
			&model.GiftGroup{},
			&model.Family{},
			&model.User{},
		} {
			if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
				t.Logf("Warning: failed to cleanup table %T: %v", m, err)
			}
		}
	}
	cleanup()
	t.Cleanup(cleanup)

	return NewGiftGroupRepository(), NewUserRepository()
}

func createGiftGroupFixture(t *testing.T, groupRepo *GiftGroupRepository, userRepo *UserRepository) (*model.GiftGroup, *model.User, *model.User) {
	t.Helper()
	u1 := &model.User{Name: "repo1", Email: "repo1@example.com", Password: "x"}
	u2 := &model.User{Name: "repo2", Email: "repo2@example.com", Password: "x"}
	require.NoError(t, userRepo.Create(u1))
	require.NoError(t, userRepo.Create(u2))

	family := &model.Family{Name: "Repo Family", InviteCode: "AAAA-BBBB", CreatedBy: u1.ID}
	require.NoError(t, db.DB.Create(family).Error)

	group := &model.GiftGroup{
		FamilyID:      family.ID,
		Name:          "Repo Group",
		CurrentAmount: decimal.Zero,
		IsActive:      true,
		CreatedBy:     u1.ID,
	}
	require.NoError(t, groupRepo.Create(group, []uint{u1.ID, u2.ID}))
	return group, u1, u2
}

func TestGiftGroupRepository_Create(t *testing.T) {
	groupRepo, userRepo := setupGiftGroupTest(t)
	group, _, _ := createGiftGroupFixture(t, groupRepo, userRepo)

	found, err := groupRepo.FindByID(group.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Len(t, found.Members, 2)
	assert.True(t, found.CurrentAmount.IsZero())
}

func TestGiftGroupRepository_ApplyContribution(t *testing.T) {
	groupRepo, userRepo := setupGiftGroupTest(t)
	group, u1, u2 := createGiftGroupFixture(t, groupRepo, userRepo)

	// First contribution adds the full amount.
	require.NoError(t, groupRepo.ApplyContribution(group.ID, u1.ID, decimal.RequireFromString("30.00"), false))
	found, err := groupRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.True(t, found.CurrentAmount.Equal(decimal.RequireFromString("30.00")),
		"expected 30.00, got %s", found.CurrentAmount)

	// Replacing a contribution moves the total by the difference only.
	require.NoError(t, groupRepo.ApplyContribution(group.ID, u1.ID, decimal.RequireFromString("50.00"), true))
	found, err = groupRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.True(t, found.CurrentAmount.Equal(decimal.RequireFromString("50.00")),
		"expected 50.00, got %s", found.CurrentAmount)

	// Lowering a contribution shrinks the total.
	require.NoError(t, groupRepo.ApplyContribution(group.ID, u1.ID, decimal.RequireFromString("20.00"), true))
	require.NoError(t, groupRepo.ApplyContribution(group.ID, u2.ID, decimal.RequireFromString("25.00"), false))
	found, err = groupRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.True(t, found.CurrentAmount.Equal(decimal.RequireFromString("45.00")),
		"expected 45.00, got %s", found.CurrentAmount)

	member, err := groupRepo.FindMember(group.ID, u1.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	require.NotNil(t, member.ContributionAmount)
	assert.True(t, member.ContributionAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, member.HasPaid)

	t.Run("Unknown member fails", func(t *testing.T) {
		err := groupRepo.ApplyContribution(group.ID, 999999, decimal.RequireFromString("10.00"), false)
		require.Error(t, err)
	})
}

func TestGiftGroupRepository_Delete(t *testing.T) {
	groupRepo, userRepo := setupGiftGroupTest(t)
	group, u1, _ := createGiftGroupFixture(t, groupRepo, userRepo)

	message := &model.Message{GiftGroupID: group.ID, UserID: u1.ID, Content: "hello"}
	require.NoError(t, db.DB.Create(message).Error)

	require.NoError(t, groupRepo.Delete(group.ID))

	found, err := groupRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	var memberCount, messageCount int64
	require.NoError(t, db.DB.Model(&model.GiftGroupMember{}).Where("gift_group_id = ?", group.ID).Count(&memberCount).Error)
	require.NoError(t, db.DB.Model(&model.Message{}).Where("gift_group_id = ?", group.ID).Count(&messageCount).Error)
	assert.Zero(t, memberCount)
	assert.Zero(t, messageCount)
}
