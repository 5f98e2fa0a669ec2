package repository

import (
	"errors"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/pkg/db"

	"gorm.io/gorm"
)

type FamilyMemberRepository struct {
	db *gorm.DB
}

func NewFamilyMemberRepository() *FamilyMemberRepository {
	return &FamilyMemberRepository{db: db.DB}
}

func (r *FamilyMemberRepository) Add(familyID, userID uint, role model.Role) error {
	if role == "" {
		role = model.RoleMember
	}
	member := &model.FamilyMember{
		FamilyID: familyID,
		UserID:   userID,
		Role:     role,
	}
	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflictf("user is already a member of this family")
		}
		return err
	}
	return nil
}

func (r *FamilyMemberRepository) FindMember(familyID, userID uint) (*model.FamilyMember, error) {
	var member model.FamilyMember
	err := r.db.Where("family_id = ? AND user_id = ?", familyID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *FamilyMemberRepository) FindByID(memberID uint) (*model.FamilyMember, error) {
	var member model.FamilyMember
	err := r.db.Preload("User").First(&member, memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *FamilyMemberRepository) CountAdmins(familyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.FamilyMember{}).
		Where("family_id = ? AND role = ?", familyID, model.RoleAdmin).
		Count(&count).Error
	return count, err
}

// Remove deletes the membership and everything the member holds in the
// family: their profile and their gift-group memberships. Gift-group totals
// are reduced by the member's contribution in the same transaction so the
// ledger invariant keeps holding.
func (r *FamilyMemberRepository) Remove(member *model.FamilyMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var groupMembers []model.GiftGroupMember
		err := tx.Joins("JOIN gift_groups ON gift_groups.id = gift_group_members.gift_group_id").
			Where("gift_groups.family_id = ? AND gift_group_members.user_id = ?", member.FamilyID, member.UserID).
			Find(&groupMembers).Error
		if err != nil {
			return err
		}
		for _, gm := range groupMembers {
			if gm.ContributionAmount != nil && !gm.ContributionAmount.IsZero() {
				err = tx.Model(&model.GiftGroup{}).Where("id = ?", gm.GiftGroupID).
					Update("current_amount", gorm.Expr("current_amount - ?", *gm.ContributionAmount)).Error
				if err != nil {
					return err
				}
			}
			if err = tx.Delete(&model.GiftGroupMember{}, gm.ID).Error; err != nil {
				return err
			}
		}
		err = tx.Where("family_id = ? AND user_id = ?", member.FamilyID, member.UserID).
			Delete(&model.Profile{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.FamilyMember{}, member.ID).Error
	})
}
