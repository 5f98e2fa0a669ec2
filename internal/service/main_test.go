package service

import (
	"fmt"
	"testing"

	"family-gifts/internal/model"
	"family-gifts/internal/repository"
	"family-gifts/pkg/config"
	"family-gifts/pkg/db"
	"family-gifts/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB initializes config, logger and the test database, and wipes
// all tables before and after the test.
func setupTestDB(t *testing.T) {
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if logger.L == nil {
		if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
			t.Logf("Logger init failed (using default): %v", err)
		}
	}
	if err := db.InitDB(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	cleanupTables(t)
	t.Cleanup(func() { cleanupTables(t) })
}

// cleanupTables wipes every table, children first.
func cleanupTables(t *testing.T) {
	for _, m := range []interface{}{
		&model.Message{},
		&model.GiftGroupMember{},
		&model.GiftGroup{},
		&model.WishlistItem{},
		&model.Profile{},
		&model.FamilyMember{},
		&model.Family{},
		&model.User{},
	} {
		if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			t.Logf("Warning: failed to cleanup table %T: %v", m, err)
		}
	}
}

func createTestUser(t *testing.T, name string) *model.User {
	t.Helper()
	userRepo := repository.NewUserRepository()
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "$2a$10$testhashtesthashtesthashte",
	}
	err := userRepo.Create(user)
	require.NoError(t, err, "Failed to create test user %s", name)
	require.True(t, user.ID > 0)
	return user
}

func newFamilyService() (*FamilyService, *mailerRecorder) {
	rec := &mailerRecorder{}
	svc := NewFamilyService(
		repository.NewFamilyRepository(),
		repository.NewFamilyMemberRepository(),
		repository.NewUserRepository(),
		rec,
	)
	return svc, rec
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// mailerRecorder captures outgoing mail instead of sending it.
type mailerRecorder struct {
	Sent []sentMail
}

func (m *mailerRecorder) Send(to, subject, htmlBody string) error {
	m.Sent = append(m.Sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// createTestFamily creates a family through the service so the owner becomes
// its admin.
func createTestFamily(t *testing.T, svc *FamilyService, ownerID uint, name string) *model.Family {
	t.Helper()
	family, err := svc.CreateFamily(ownerID, CreateFamilyRequest{Name: name})
	require.NoError(t, err)
	require.True(t, family.ID > 0)
	return family
}
