package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/internal/repository"
	"family-gifts/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GiftGroupService manages pooled-gift groups, the contribution ledger and
// the group chat.
type GiftGroupService struct {
	groupRepo   *repository.GiftGroupRepository
	messageRepo *repository.MessageRepository
	memberRepo  *repository.FamilyMemberRepository
}

func NewGiftGroupService(
	groupRepo *repository.GiftGroupRepository,
	messageRepo *repository.MessageRepository,
	memberRepo *repository.FamilyMemberRepository,
) *GiftGroupService {
	return &GiftGroupService{
		groupRepo:   groupRepo,
		messageRepo: messageRepo,
		memberRepo:  memberRepo,
	}
}

type CreateGroupRequest struct {
	FamilyID     uint             `json:"family_id" binding:"required"`
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	Occasion     string           `json:"occasion"`
	OccasionDate *time.Time       `json:"occasion_date"`
	TargetUserID *uint            `json:"target_user_id"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	MemberIDs    []uint           `json:"member_ids"`
}

type UpdateGroupRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Occasion     *string          `json:"occasion"`
	OccasionDate *time.Time       `json:"occasion_date"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	IsActive     *bool            `json:"is_active"`
}

type ContributeRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	HasPaid bool            `json:"has_paid"`
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// GroupSummary is a group as listed on the overview, with derived counts for
// the requesting member.
type GroupSummary struct {
	Group           model.GiftGroup `json:"group"`
	MemberCount     int             `json:"member_count"`
	UnreadMessages  int64           `json:"unread_messages"`
	ProgressPercent int             `json:"progress_percent"`
}

// CreateGroup creates the group with the creator plus each listed family
// member; every member starts with no contribution.
func (s *GiftGroupService) CreateGroup(creatorID uint, req CreateGroupRequest) (*model.GiftGroup, error) {
	if err := s.requireFamilyMember(req.FamilyID, creatorID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return nil, apperr.Validationf("group name is required and must be at most 100 characters")
	}
	if req.TargetAmount != nil && req.TargetAmount.IsNegative() {
		return nil, apperr.Validationf("target amount cannot be negative")
	}

	memberIDs := []uint{creatorID}
	seen := map[uint]bool{creatorID: true}
	for _, id := range req.MemberIDs {
		if seen[id] {
			continue
		}
		if err := s.requireFamilyMember(req.FamilyID, id); err != nil {
			return nil, apperr.Validationf("user %d is not a member of this family", id)
		}
		seen[id] = true
		memberIDs = append(memberIDs, id)
	}

	group := &model.GiftGroup{
		FamilyID:      req.FamilyID,
		Name:          name,
		Description:   req.Description,
		Occasion:      req.Occasion,
		OccasionDate:  req.OccasionDate,
		TargetUserID:  req.TargetUserID,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		IsActive:      true,
		CreatedBy:     creatorID,
	}
	if err := s.groupRepo.Create(group, memberIDs); err != nil {
		return nil, err
	}
	return s.groupRepo.FindByID(group.ID)
}

// ListGroups returns the requester's groups in the family with member and
// unread-message counts.
func (s *GiftGroupService) ListGroups(requesterID, familyID uint) ([]GroupSummary, error) {
	if err := s.requireFamilyMember(familyID, requesterID); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.FindFamilyGroupsForUser(familyID, requesterID)
	if err != nil {
		return nil, err
	}

	summaries := make([]GroupSummary, 0, len(groups))
	for i := range groups {
		g := groups[i]
		var lastRead *time.Time
		for _, m := range g.Members {
			if m.UserID == requesterID {
				lastRead = m.LastReadAt
				break
			}
		}
		unread, err := s.messageRepo.CountAfter(g.ID, lastRead)
		if err != nil {
			logger.L.Warn("ListGroups: failed to count unread messages",
				zap.Uint("groupID", g.ID), zap.Error(err))
			unread = 0
		}
		summaries = append(summaries, GroupSummary{
			Group:           g,
			MemberCount:     len(g.Members),
			UnreadMessages:  unread,
			ProgressPercent: g.ProgressPercent(),
		})
	}
	return summaries, nil
}

// GetGroup returns the group with members preloaded; requester must belong
// to it.
func (s *GiftGroupService) GetGroup(requesterID, groupID uint) (*model.GiftGroup, error) {
	group, _, err := s.loadGroupMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroup applies a partial update; only the group's creator may edit.
func (s *GiftGroupService) UpdateGroup(requesterID, groupID uint, req UpdateGroupRequest) (*model.GiftGroup, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperr.NotFoundf("gift group not found")
	}
	if group.CreatedBy != requesterID {
		return nil, apperr.Authorizationf("only the group creator can edit this group")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || utf8.RuneCountInString(name) > 100 {
			return nil, apperr.Validationf("group name is required and must be at most 100 characters")
		}
		group.Name = name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Occasion != nil {
		group.Occasion = *req.Occasion
	}
	if req.OccasionDate != nil {
		group.OccasionDate = req.OccasionDate
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.IsNegative() {
			return nil, apperr.Validationf("target amount cannot be negative")
		}
		group.TargetAmount = req.TargetAmount
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}

	if err := s.groupRepo.Save(group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes the group; only its creator may do so.
func (s *GiftGroupService) DeleteGroup(requesterID, groupID uint) error {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return apperr.NotFoundf("gift group not found")
	}
	if group.CreatedBy != requesterID {
		return apperr.Authorizationf("only the group creator can delete this group")
	}
	return s.groupRepo.Delete(groupID)
}

// Contribute records the requester's contribution. The member row and the
// group's running total change in one transaction; the total always equals
// the sum of contributions.
func (s *GiftGroupService) Contribute(requesterID, groupID uint, req ContributeRequest) (*model.GiftGroup, error) {
	if req.Amount.IsNegative() {
		return nil, apperr.Validationf("contribution amount cannot be negative")
	}

	_, _, err := s.loadGroupMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.ApplyContribution(groupID, requesterID, req.Amount, req.HasPaid); err != nil {
		return nil, err
	}
	return s.groupRepo.FindByID(groupID)
}

// PostMessage appends a chat message authored by the requester.
func (s *GiftGroupService) PostMessage(requesterID, groupID uint, req PostMessageRequest) (*model.Message, error) {
	_, _, err := s.loadGroupMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperr.Validationf("message content cannot be empty")
	}

	message := &model.Message{
		GiftGroupID: groupID,
		UserID:      requesterID,
		Content:     content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages returns the chat in creation order and stamps the requester's
// last-read marker, resetting their unread count.
func (s *GiftGroupService) ListMessages(requesterID, groupID uint) ([]model.Message, error) {
	_, member, err := s.loadGroupMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindGroupMessages(groupID)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.TouchLastRead(member.ID, time.Now()); err != nil {
		logger.L.Warn("ListMessages: failed to update last read marker",
			zap.Uint("groupID", groupID), zap.Uint("userID", requesterID), zap.Error(err))
	}
	return messages, nil
}

func (s *GiftGroupService) loadGroupMember(groupID, userID uint) (*model.GiftGroup, *model.GiftGroupMember, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, apperr.NotFoundf("gift group not found")
	}
	member, err := s.groupRepo.FindMember(groupID, userID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, apperr.Authorizationf("you are not a member of this group")
	}
	return group, member, nil
}

func (s *GiftGroupService) requireFamilyMember(familyID, userID uint) error {
	member, err := s.memberRepo.FindMember(familyID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.Authorizationf("you are not a member of this family")
	}
	return nil
}
