package service

import (
	"time"

	"family-gifts/internal/model"

	"github.com/shopspring/decimal"
)

// ItemView is the response shape for a wishlist item as seen by a specific
// viewer.
type ItemView struct {
	ID          uint             `json:"id"`
	UserID      uint             `json:"user_id"`
	FamilyID    uint             `json:"family_id"`
	OwnerName   string           `json:"owner_name,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	URL         string           `json:"url,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Priority    model.Priority   `json:"priority"`
	Category    string           `json:"category,omitempty"`

	ClaimedBy     *uint      `json:"claimed_by,omitempty"`
	ClaimedByName string     `json:"claimed_by_name,omitempty"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`
	Purchased     bool       `json:"purchased"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// projectForViewer maps a stored item to the view the given user may see.
// The item's owner must never learn whether (or by whom) their item was
// claimed or purchased, so those fields are blanked when viewer == owner.
func projectForViewer(item *model.WishlistItem, viewerID uint) ItemView {
	view := ItemView{
		ID:          item.ID,
		UserID:      item.UserID,
		FamilyID:    item.FamilyID,
		OwnerName:   item.Owner.Name,
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		ImageURL:    item.ImageURL,
		Price:       item.Price,
		Priority:    item.Priority,
		Category:    item.Category,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	if item.UserID == viewerID {
		return view
	}

	view.ClaimedBy = item.ClaimedBy
	view.ClaimedAt = item.ClaimedAt
	view.Purchased = item.Purchased
	if item.Claimer != nil {
		view.ClaimedByName = item.Claimer.Name
	}
	return view
}
