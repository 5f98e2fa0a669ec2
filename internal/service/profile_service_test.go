package service

import (
	"testing"
	"time"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService() *ProfileService {
	return NewProfileService(
		repository.NewProfileRepository(),
		repository.NewFamilyMemberRepository(),
	)
}

func TestProfileService_UpsertProfile(t *testing.T) {
	setupTestDB(t)
	svc := newProfileService()
	familySvc, _ := newFamilyService()
	user := createTestUser(t, "profileowner")
	family := createTestFamily(t, familySvc, user.ID, "Profile Family")

	view, err := svc.UpsertProfile(user.ID, UpsertProfileRequest{
		FamilyID:       family.ID,
		ShoeSize:       "10",
		FavoriteColors: []string{"blue", "green"},
		Hobbies:        []string{"woodworking"},
	})
	require.NoError(t, err)
	require.True(t, view.Profile.ID > 0)
	assert.Equal(t, "10", view.Profile.ShoeSize)

	// Upsert overwrites the existing row instead of inserting a second one.
	view2, err := svc.UpsertProfile(user.ID, UpsertProfileRequest{
		FamilyID: family.ID,
		ShoeSize: "10.5",
	})
	require.NoError(t, err)
	assert.Equal(t, view.Profile.ID, view2.Profile.ID)
	assert.Equal(t, "10.5", view2.Profile.ShoeSize)
	assert.Empty(t, view2.Profile.FavoriteColors)

	t.Run("Non-member rejected", func(t *testing.T) {
		outsider := createTestUser(t, "profileoutsider")
		_, err := svc.UpsertProfile(outsider.ID, UpsertProfileRequest{FamilyID: family.ID})
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})
}

func TestProfileService_GetProfile(t *testing.T) {
	setupTestDB(t)
	svc := newProfileService()
	familySvc, _ := newFamilyService()
	owner := createTestUser(t, "profowner")
	viewer := createTestUser(t, "profviewer")
	family := createTestFamily(t, familySvc, owner.ID, "View Family")
	_, err := familySvc.JoinFamily(viewer.ID, JoinFamilyRequest{InviteCode: family.InviteCode})
	require.NoError(t, err)

	_, err = svc.UpsertProfile(owner.ID, UpsertProfileRequest{
		FamilyID: family.ID,
		ShoeSize: "9",
		Notes:    "no scented candles",
	})
	require.NoError(t, err)

	t.Run("Any family member can view", func(t *testing.T) {
		view, err := svc.GetProfile(viewer.ID, family.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "no scented candles", view.Profile.Notes)
	})

	t.Run("Missing profile is not found", func(t *testing.T) {
		_, err := svc.GetProfile(owner.ID, family.ID, viewer.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Target outside the family is not found", func(t *testing.T) {
		outsider := createTestUser(t, "proftarget")
		_, err := svc.GetProfile(owner.ID, family.ID, outsider.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Non-member viewer rejected", func(t *testing.T) {
		outsider := createTestUser(t, "profviewer2")
		_, err := svc.GetProfile(outsider.ID, family.ID, owner.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})
}

func TestCompletionPercent(t *testing.T) {
	birthday := time.Date(1980, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		profile *model.Profile
		want    int
	}{
		{"Nil profile", nil, 0},
		{"Empty profile", &model.Profile{}, 0},
		{
			"Full profile",
			&model.Profile{
				ShoeSize:       "10",
				PantSize:       "32x32",
				ShirtSize:      "L",
				RingSize:       "9",
				FavoriteColors: []string{"blue"},
				VehicleMake:    "Toyota",
				Hobbies:        []string{"fishing"},
				Interests:      []string{"history"},
				Birthday:       &birthday,
			},
			100,
		},
		{
			"Three of nine",
			&model.Profile{
				ShoeSize: "10",
				PantSize: "32x32",
				Birthday: &birthday,
			},
			33,
		},
		{
			"Five of nine rounds up",
			&model.Profile{
				ShoeSize:       "10",
				PantSize:       "32x32",
				ShirtSize:      "L",
				FavoriteColors: []string{"blue"},
				Birthday:       &birthday,
			},
			56,
		},
		{
			"Dress size and allergies do not count",
			&model.Profile{
				DressSize: "8",
				Allergies: "peanuts",
				Notes:     "anything handmade",
			},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompletionPercent(tt.profile))
		})
	}
}
