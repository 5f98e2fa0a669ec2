package repository

import (
	"errors"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/pkg/db"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{db: db.DB}
}

func (r *ProfileRepository) FindByUserAndFamily(userID, familyID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Where("user_id = ? AND family_id = ?", userID, familyID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or overwrites the single profile row keyed on
// (userID, familyID).
func (r *ProfileRepository) Upsert(profile *model.Profile) error {
	existing, err := r.FindByUserAndFamily(profile.UserID, profile.FamilyID)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
	}
	if err := r.db.Save(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("a profile for this family already exists")
		}
		return err
	}
	return nil
}

// FindFamilyProfiles returns every profile in the family.
func (r *ProfileRepository) FindFamilyProfiles(familyID uint) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.Where("family_id = ?", familyID).Preload("User").Find(&profiles).Error
	return profiles, err
}
