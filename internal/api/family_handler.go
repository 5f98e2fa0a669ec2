package api

import (
	"net/http"

	"family-gifts/internal/model"
	"family-gifts/internal/service"

	"github.com/gin-gonic/gin"
)

// FamilyHandler serves family CRUD, membership and invitations.
type FamilyHandler struct {
	familyService *service.FamilyService
}

func NewFamilyHandler(familyService *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	family, err := h.familyService.CreateFamily(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Family created successfully",
		"family":  familyResponse(family),
	})
}

func (h *FamilyHandler) ListFamilies(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	families, err := h.familyService.ListFamilies(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]gin.H, 0, len(families))
	for i := range families {
		response = append(response, familyResponse(&families[i]))
	}
	c.JSON(http.StatusOK, gin.H{"families": response})
}

func (h *FamilyHandler) GetFamily(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := pathID(c, "familyId")
	if !ok {
		return
	}

	family, err := h.familyService.GetFamily(userID, familyID)
	if err != nil {
		respondError(c, err)
		return
	}

	members := make([]gin.H, 0, len(family.Members))
	for _, m := range family.Members {
		members = append(members, gin.H{
			"member_id": m.ID,
			"user_id":   m.UserID,
			"name":      m.User.Name,
			"email":     m.User.Email,
			"role":      m.Role,
			"joined_at": m.JoinedAt,
		})
	}

	resp := familyResponse(family)
	resp["members"] = members
	c.JSON(http.StatusOK, resp)
}

func (h *FamilyHandler) UpdateFamily(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := pathID(c, "familyId")
	if !ok {
		return
	}

	var req service.UpdateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	family, err := h.familyService.UpdateFamily(userID, familyID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Family updated successfully",
		"family":  familyResponse(family),
	})
}

func (h *FamilyHandler) DeleteFamily(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := pathID(c, "familyId")
	if !ok {
		return
	}

	if err := h.familyService.DeleteFamily(userID, familyID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Family deleted successfully"})
}

func (h *FamilyHandler) JoinFamily(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	family, err := h.familyService.JoinFamily(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Joined family successfully",
		"family":  familyResponse(family),
	})
}

func (h *FamilyHandler) RemoveMember(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := pathID(c, "familyId")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	if err := h.familyService.RemoveMember(userID, familyID, memberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

func (h *FamilyHandler) InviteByEmail(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := pathID(c, "familyId")
	if !ok {
		return
	}

	var req service.InviteByEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.familyService.InviteByEmail(userID, familyID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation sent"})
}

func familyResponse(f *model.Family) gin.H {
	return gin.H{
		"id":           f.ID,
		"name":         f.Name,
		"invite_code":  f.InviteCode,
		"created_by":   f.CreatedBy,
		"created_at":   f.CreatedAt,
		"member_count": len(f.Members),
	}
}
