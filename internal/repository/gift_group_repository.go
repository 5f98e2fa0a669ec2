package repository

import (
	"errors"
	"time"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/pkg/db"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GiftGroupRepository struct {
	db *gorm.DB
}

func NewGiftGroupRepository() *GiftGroupRepository {
	return &GiftGroupRepository{db: db.DB}
}

// Create inserts the group and a member row for each listed user.
func (r *GiftGroupRepository) Create(group *model.GiftGroup, memberIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			member := &model.GiftGroupMember{
				GiftGroupID: group.ID,
				UserID:      userID,
			}
			if err := tx.Create(member).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperr.Conflictf("user is already in this gift group")
				}
				return err
			}
		}
		return nil
	})
}

func (r *GiftGroupRepository) FindByID(groupID uint) (*model.GiftGroup, error) {
	var group model.GiftGroup
	err := r.db.Preload("Members").Preload("Members.User").Preload("Creator").First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// FindFamilyGroupsForUser returns the family's groups the user belongs to,
// newest first.
func (r *GiftGroupRepository) FindFamilyGroupsForUser(familyID, userID uint) ([]model.GiftGroup, error) {
	var groups []model.GiftGroup
	err := r.db.Joins("JOIN gift_group_members ON gift_groups.id = gift_group_members.gift_group_id").
		Where("gift_groups.family_id = ? AND gift_group_members.user_id = ?", familyID, userID).
		Preload("Members").
		Order("gift_groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *GiftGroupRepository) Save(group *model.GiftGroup) error {
	return r.db.Save(group).Error
}

// Delete removes the group with its members and messages.
func (r *GiftGroupRepository) Delete(groupID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gift_group_id = ?", groupID).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("gift_group_id = ?", groupID).Delete(&model.GiftGroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GiftGroup{}, groupID).Error
	})
}

func (r *GiftGroupRepository) FindMember(groupID, userID uint) (*model.GiftGroupMember, error) {
	var member model.GiftGroupMember
	err := r.db.Where("gift_group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// ApplyContribution sets the member's contribution and moves the group total
// by the delta in a single transaction. The two writes must commit together
// or the running total drifts from the sum of contributions. The member row
// is read under a row lock so the delta is derived from the committed value
// when the same member's update is retried concurrently.
func (r *GiftGroupRepository) ApplyContribution(groupID, userID uint, amount decimal.Decimal, hasPaid bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var member model.GiftGroupMember
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("gift_group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
		if err != nil {
			return err
		}

		previous := decimal.Zero
		if member.ContributionAmount != nil {
			previous = *member.ContributionAmount
		}
		delta := amount.Sub(previous)

		err = tx.Model(&model.GiftGroupMember{}).Where("id = ?", member.ID).
			Updates(map[string]interface{}{
				"contribution_amount": amount,
				"has_paid":            hasPaid,
			}).Error
		if err != nil {
			return err
		}

		return tx.Model(&model.GiftGroup{}).Where("id = ?", groupID).
			Update("current_amount", gorm.Expr("current_amount + ?", delta)).Error
	})
}

// TouchLastRead stamps the member's last-read marker for unread counting.
func (r *GiftGroupRepository) TouchLastRead(memberID uint, at time.Time) error {
	return r.db.Model(&model.GiftGroupMember{}).Where("id = ?", memberID).
		Update("last_read_at", at).Error
}
