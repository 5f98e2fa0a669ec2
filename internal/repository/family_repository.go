package repository

import (
	"errors"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/pkg/db"

	"gorm.io/gorm"
)

type FamilyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository() *FamilyRepository {
	return &FamilyRepository{db: db.DB}
}

// Create inserts the family together with its creator as the sole ADMIN
// member.
func (r *FamilyRepository) Create(family *model.Family) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflictf("invite code is already in use")
			}
			return err
		}
		admin := &model.FamilyMember{
			FamilyID: family.ID,
			UserID:   family.CreatedBy,
			Role:     model.RoleAdmin,
		}
		return tx.Create(admin).Error
	})
}

func (r *FamilyRepository) FindByID(familyID uint) (*model.Family, error) {
	var family model.Family
	err := r.db.Preload("Members").Preload("Members.User").Preload("Creator").First(&family, familyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &family, nil
}

func (r *FamilyRepository) FindByInviteCode(code string) (*model.Family, error) {
	var family model.Family
	err := r.db.Where("invite_code = ?", code).First(&family).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &family, nil
}

// FindUserFamilies returns all families the user belongs to, newest first.
func (r *FamilyRepository) FindUserFamilies(userID uint) ([]model.Family, error) {
	var families []model.Family
	err := r.db.Joins("JOIN family_members ON families.id = family_members.family_id").
		Where("family_members.user_id = ?", userID).
		Preload("Members").
		Order("families.created_at DESC").
		Find(&families).Error
	return families, err
}

func (r *FamilyRepository) UpdateName(familyID uint, name string) error {
	return r.db.Model(&model.Family{}).Where("id = ?", familyID).Update("name", name).Error
}

// Delete removes the family and everything scoped to it: memberships,
// profiles, wishlist items, gift groups with their members and messages.
func (r *FamilyRepository) Delete(familyID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var groupIDs []uint
		if err := tx.Model(&model.GiftGroup{}).Where("family_id = ?", familyID).
			Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("gift_group_id IN ?", groupIDs).Delete(&model.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Where("gift_group_id IN ?", groupIDs).Delete(&model.GiftGroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", groupIDs).Delete(&model.GiftGroup{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("family_id = ?", familyID).Delete(&model.WishlistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", familyID).Delete(&model.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", familyID).Delete(&model.FamilyMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Family{}, familyID).Error
	})
}
