package repository

import (
	"errors"
	"time"

	"family-gifts/internal/model"
	"family-gifts/pkg/db"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{db: db.DB}
}

func (r *WishlistRepository) Create(item *model.WishlistItem) error {
	return r.db.Create(item).Error
}

func (r *WishlistRepository) FindByID(itemID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Preload("Owner").Preload("Claimer").First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ItemFilters narrows a family wishlist query.
type ItemFilters struct {
	OwnerID  *uint
	Priority *model.Priority
}

// FindFamilyItems returns the family's items ordered by priority descending,
// then creation time descending.
func (r *WishlistRepository) FindFamilyItems(familyID uint, filters ItemFilters) ([]model.WishlistItem, error) {
	q := r.db.Where("family_id = ?", familyID)
	if filters.OwnerID != nil {
		q = q.Where("user_id = ?", *filters.OwnerID)
	}
	if filters.Priority != nil {
		q = q.Where("priority = ?", *filters.Priority)
	}

	var items []model.WishlistItem
	err := q.Preload("Owner").Preload("Claimer").
		Order("CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END DESC").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *WishlistRepository) Save(item *model.WishlistItem) error {
	return r.db.Save(item).Error
}

// SetClaim writes the claim columns as one unit. Passing claimedBy=nil
// clears the claim, which also clears purchased per the dependent invariant.
func (r *WishlistRepository) SetClaim(itemID uint, claimedBy *uint, claimedAt *time.Time, purchased bool) error {
	return r.db.Model(&model.WishlistItem{}).Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"claimed_by": claimedBy,
			"claimed_at": claimedAt,
			"purchased":  purchased,
		}).Error
}

func (r *WishlistRepository) Delete(itemID uint) error {
	return r.db.Delete(&model.WishlistItem{}, itemID).Error
}
