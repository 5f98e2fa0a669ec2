package service

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/internal/repository"

	"github.com/shopspring/decimal"
)

// WishlistService manages wish items and the claim/purchase workflow.
type WishlistService struct {
	itemRepo   *repository.WishlistRepository
	memberRepo *repository.FamilyMemberRepository
}

func NewWishlistService(
	itemRepo *repository.WishlistRepository,
	memberRepo *repository.FamilyMemberRepository,
) *WishlistService {
	return &WishlistService{
		itemRepo:   itemRepo,
		memberRepo: memberRepo,
	}
}

type CreateItemRequest struct {
	FamilyID    uint             `json:"family_id" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	ImageURL    string           `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Priority    model.Priority   `json:"priority"`
	Category    string           `json:"category"`
}

type UpdateItemRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	URL         *string          `json:"url"`
	ImageURL    *string          `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Priority    *model.Priority  `json:"priority"`
	Category    *string          `json:"category"`
}

// ListItems returns the family's items, each projected for the viewer.
func (s *WishlistService) ListItems(viewerID, familyID uint, filters repository.ItemFilters) ([]ItemView, error) {
	if err := s.requireMember(familyID, viewerID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindFamilyItems(familyID, filters)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, projectForViewer(&items[i], viewerID))
	}
	return views, nil
}

func (s *WishlistService) CreateItem(ownerID uint, req CreateItemRequest) (*ItemView, error) {
	if err := s.requireMember(req.FamilyID, ownerID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > 200 {
		return nil, apperr.Validationf("title is required and must be at most 200 characters")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, apperr.Validationf("price cannot be negative")
	}
	if err := validateItemURL(req.URL); err != nil {
		return nil, err
	}
	if err := validateItemURL(req.ImageURL); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, apperr.Validationf("priority must be LOW, MEDIUM or HIGH")
	}

	item := &model.WishlistItem{
		UserID:      ownerID,
		FamilyID:    req.FamilyID,
		Title:       title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Priority:    priority,
		Category:    req.Category,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	view := projectForViewer(item, ownerID)
	return &view, nil
}

// UpdateItem applies a partial update; only the owner may edit. Claim fields
// are never touched here.
func (s *WishlistService) UpdateItem(requesterID, itemID uint, req UpdateItemRequest) (*ItemView, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFoundf("wishlist item not found")
	}
	if item.UserID != requesterID {
		return nil, apperr.Authorizationf("only the owner can edit this item")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || utf8.RuneCountInString(title) > 200 {
			return nil, apperr.Validationf("title is required and must be at most 200 characters")
		}
		item.Title = title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.URL != nil {
		if err := validateItemURL(*req.URL); err != nil {
			return nil, err
		}
		item.URL = *req.URL
	}
	if req.ImageURL != nil {
		if err := validateItemURL(*req.ImageURL); err != nil {
			return nil, err
		}
		item.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.Validationf("price cannot be negative")
		}
		item.Price = req.Price
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			return nil, apperr.Validationf("priority must be LOW, MEDIUM or HIGH")
		}
		item.Priority = *req.Priority
	}
	if req.Category != nil {
		item.Category = *req.Category
	}

	if err := s.itemRepo.Save(item); err != nil {
		return nil, err
	}

	view := projectForViewer(item, requesterID)
	return &view, nil
}

func (s *WishlistService) DeleteItem(requesterID, itemID uint) error {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperr.NotFoundf("wishlist item not found")
	}
	if item.UserID != requesterID {
		return apperr.Authorizationf("only the owner can delete this item")
	}
	return s.itemRepo.Delete(itemID)
}

// Claim reserves the item for the requester. Re-claiming an item you already
// claimed is a no-op.
func (s *WishlistService) Claim(requesterID, itemID uint) (*ItemView, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFoundf("wishlist item not found")
	}
	if item.UserID == requesterID {
		return nil, apperr.Conflictf("you cannot claim your own wishlist items")
	}
	if item.ClaimedBy != nil && *item.ClaimedBy != requesterID {
		return nil, apperr.Conflictf("this item has already been claimed by someone else")
	}

	if item.ClaimedBy == nil {
		now := time.Now()
		if err := s.itemRepo.SetClaim(itemID, &requesterID, &now, false); err != nil {
			return nil, err
		}
		// Reload so the claimer association matches what a later list returns.
		if item, err = s.itemRepo.FindByID(itemID); err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperr.NotFoundf("wishlist item not found")
		}
	}

	view := projectForViewer(item, requesterID)
	return &view, nil
}

// Unclaim releases the requester's claim. Purchased is cleared together with
// the claim so the item never reads purchased-without-claimer.
func (s *WishlistService) Unclaim(requesterID, itemID uint) (*ItemView, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFoundf("wishlist item not found")
	}
	if item.ClaimedBy == nil || *item.ClaimedBy != requesterID {
		return nil, apperr.Authorizationf("you can only unclaim items you have claimed")
	}

	if err := s.itemRepo.SetClaim(itemID, nil, nil, false); err != nil {
		return nil, err
	}
	item.ClaimedBy = nil
	item.ClaimedAt = nil
	item.Claimer = nil
	item.Purchased = false

	view := projectForViewer(item, requesterID)
	return &view, nil
}

// MarkPurchased flags a claimed item as bought; only the claimer may do so.
func (s *WishlistService) MarkPurchased(requesterID, itemID uint) (*ItemView, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFoundf("wishlist item not found")
	}
	if item.ClaimedBy == nil {
		return nil, apperr.Conflictf("item must be claimed before it can be marked purchased")
	}
	if *item.ClaimedBy != requesterID {
		return nil, apperr.Authorizationf("only the claimer can mark this item purchased")
	}

	if err := s.itemRepo.SetClaim(itemID, item.ClaimedBy, item.ClaimedAt, true); err != nil {
		return nil, err
	}
	if item, err = s.itemRepo.FindByID(itemID); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFoundf("wishlist item not found")
	}

	view := projectForViewer(item, requesterID)
	return &view, nil
}

func (s *WishlistService) requireMember(familyID, userID uint) error {
	member, err := s.memberRepo.FindMember(familyID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.Authorizationf("you are not a member of this family")
	}
	return nil
}

func validateItemURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Validationf("url must be a valid http or https address")
	}
	return nil
}
