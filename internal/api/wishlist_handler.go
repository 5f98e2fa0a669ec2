package api

import (
	"net/http"

	"family-gifts/internal/model"
	"family-gifts/internal/repository"
	"family-gifts/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistHandler serves wish items and the claim/purchase workflow.
type WishlistHandler struct {
	wishlistService *service.WishlistService
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) ListItems(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := queryID(c, "familyId", true)
	if !ok {
		return
	}
	ownerID, ok := queryID(c, "ownerId", false)
	if !ok {
		return
	}

	filters := repository.ItemFilters{OwnerID: ownerID}
	if raw := c.Query("priority"); raw != "" {
		p := model.Priority(raw)
		if !model.ValidPriority(p) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be LOW, MEDIUM or HIGH"})
			return
		}
		filters.Priority = &p
	}

	items, err := h.wishlistService.ListItems(userID, *familyID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *WishlistHandler) CreateItem(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	item, err := h.wishlistService.CreateItem(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"item":    item,
	})
}

func (h *WishlistHandler) UpdateItem(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	item, err := h.wishlistService.UpdateItem(userID, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"item":    item,
	})
}

func (h *WishlistHandler) DeleteItem(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	if err := h.wishlistService.DeleteItem(userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (h *WishlistHandler) ClaimItem(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.wishlistService.Claim(userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item claimed successfully",
		"item":    item,
	})
}

func (h *WishlistHandler) UnclaimItem(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.wishlistService.Unclaim(userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item unclaimed successfully",
		"item":    item,
	})
}

func (h *WishlistHandler) MarkPurchased(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.wishlistService.MarkPurchased(userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item marked as purchased",
		"item":    item,
	})
}
