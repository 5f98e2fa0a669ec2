package api

import (
	"net/http"

	"family-gifts/internal/model"
	"family-gifts/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler serves gift groups, contributions and the group chat.
type GroupHandler struct {
	groupService *service.GiftGroupService
}

func NewGroupHandler(groupService *service.GiftGroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Gift group created successfully",
		"group":   groupResponse(group),
	})
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	familyID, ok := queryID(c, "familyId", true)
	if !ok {
		return
	}

	summaries, err := h.groupService.ListGroups(userID, *familyID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]gin.H, 0, len(summaries))
	for i := range summaries {
		s := summaries[i]
		resp := groupResponse(&s.Group)
		resp["member_count"] = s.MemberCount
		resp["unread_messages"] = s.UnreadMessages
		resp["progress_percent"] = s.ProgressPercent
		response = append(response, resp)
	}
	c.JSON(http.StatusOK, gin.H{"groups": response})
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(userID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	members := make([]gin.H, 0, len(group.Members))
	for _, m := range group.Members {
		members = append(members, gin.H{
			"user_id":             m.UserID,
			"name":                m.User.Name,
			"contribution_amount": m.ContributionAmount,
			"has_paid":            m.HasPaid,
			"joined_at":           m.JoinedAt,
		})
	}

	resp := groupResponse(group)
	resp["members"] = members
	resp["progress_percent"] = group.ProgressPercent()
	c.JSON(http.StatusOK, resp)
}

func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}

	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.UpdateGroup(userID, groupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Gift group updated successfully",
		"group":   groupResponse(group),
	})
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(userID, groupID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gift group deleted successfully"})
}

func (h *GroupHandler) Contribute(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}

	var req service.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	group, err := h.groupService.Contribute(userID, groupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Contribution updated successfully",
		"current_amount": group.CurrentAmount,
	})
}

func (h *GroupHandler) ListMessages(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}

	messages, err := h.groupService.ListMessages(userID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		response = append(response, gin.H{
			"id":         m.ID,
			"user_id":    m.UserID,
			"author":     m.User.Name,
			"content":    m.Content,
			"created_at": m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": response})
}

func (h *GroupHandler) PostMessage(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := pathID(c, "groupId")
	if !ok {
		return
	}

	var req service.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	message, err := h.groupService.PostMessage(userID, groupID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": gin.H{
			"id":         message.ID,
			"user_id":    message.UserID,
			"content":    message.Content,
			"created_at": message.CreatedAt,
		},
	})
}

func groupResponse(g *model.GiftGroup) gin.H {
	return gin.H{
		"id":             g.ID,
		"family_id":      g.FamilyID,
		"name":           g.Name,
		"description":    g.Description,
		"occasion":       g.Occasion,
		"occasion_date":  g.OccasionDate,
		"target_user_id": g.TargetUserID,
		"target_amount":  g.TargetAmount,
		"current_amount": g.CurrentAmount,
		"is_active":      g.IsActive,
		"created_by":     g.CreatedBy,
		"created_at":     g.CreatedAt,
	}
}
