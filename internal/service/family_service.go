package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"family-gifts/internal/apperr"
	"family-gifts/internal/model"
	"family-gifts/internal/repository"
	"family-gifts/pkg/config"
	"family-gifts/pkg/logger"
	"family-gifts/pkg/mailer"
	"family-gifts/pkg/utils"

	"go.uber.org/zap"
)

// inviteCodeAttempts bounds the regenerate-on-collision loop.
const inviteCodeAttempts = 5

// FamilyService manages family groups, membership and invitations.
type FamilyService struct {
	familyRepo *repository.FamilyRepository
	memberRepo *repository.FamilyMemberRepository
	userRepo   *repository.UserRepository
	mailer     mailer.Mailer
}

func NewFamilyService(
	familyRepo *repository.FamilyRepository,
	memberRepo *repository.FamilyMemberRepository,
	userRepo *repository.UserRepository,
	m mailer.Mailer,
) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		mailer:     m,
	}
}

type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinFamilyRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type UpdateFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

type InviteByEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateFamily creates the family with a fresh unique invite code and the
// owner as its sole admin.
func (s *FamilyService) CreateFamily(ownerID uint, req CreateFamilyRequest) (*model.Family, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return nil, apperr.Validationf("family name must be between 2 and 50 characters")
	}

	code, err := s.freshInviteCode()
	if err != nil {
		return nil, err
	}

	family := &model.Family{
		Name:       name,
		InviteCode: code,
		CreatedBy:  ownerID,
	}
	if err := s.familyRepo.Create(family); err != nil {
		return nil, err
	}
	return family, nil
}

func (s *FamilyService) freshInviteCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return "", err
		}
		existing, err := s.familyRepo.FindByInviteCode(code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
		logger.L.Warn("invite code collision, regenerating", zap.String("code", code))
	}
	return "", apperr.Conflictf("could not allocate a unique invite code")
}

// JoinFamily adds the user as a MEMBER of the family identified by code.
func (s *FamilyService) JoinFamily(userID uint, req JoinFamilyRequest) (*model.Family, error) {
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))

	family, err := s.familyRepo.FindByInviteCode(code)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, apperr.NotFoundf("invalid invite code")
	}

	member, err := s.memberRepo.FindMember(family.ID, userID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, apperr.Conflictf("you are already a member of this family")
	}

	if err := s.memberRepo.Add(family.ID, userID, model.RoleMember); err != nil {
		return nil, err
	}
	return family, nil
}

// ListFamilies returns the families the user belongs to.
func (s *FamilyService) ListFamilies(userID uint) ([]model.Family, error) {
	return s.familyRepo.FindUserFamilies(userID)
}

// GetFamily returns the family with members preloaded; requester must be a
// member.
func (s *FamilyService) GetFamily(requesterID, familyID uint) (*model.Family, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, apperr.NotFoundf("family not found")
	}
	if _, err := s.requireMember(familyID, requesterID); err != nil {
		return nil, err
	}
	return family, nil
}

// UpdateFamily renames the family; admin only.
func (s *FamilyService) UpdateFamily(requesterID, familyID uint, req UpdateFamilyRequest) (*model.Family, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, apperr.NotFoundf("family not found")
	}
	if err := s.requireAdmin(familyID, requesterID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return nil, apperr.Validationf("family name must be between 2 and 50 characters")
	}

	if err := s.familyRepo.UpdateName(familyID, name); err != nil {
		return nil, err
	}
	return s.familyRepo.FindByID(familyID)
}

// DeleteFamily removes the family and everything scoped to it; admin only.
func (s *FamilyService) DeleteFamily(requesterID, familyID uint) error {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return apperr.NotFoundf("family not found")
	}
	if err := s.requireAdmin(familyID, requesterID); err != nil {
		return err
	}
	return s.familyRepo.Delete(familyID)
}

// RemoveMember removes another member from the family; admin only. The last
// remaining admin can never be removed, and admins cannot remove themselves
// through this path.
func (s *FamilyService) RemoveMember(requesterID, familyID, memberID uint) error {
	if err := s.requireAdmin(familyID, requesterID); err != nil {
		return err
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return err
	}
	if member == nil || member.FamilyID != familyID {
		return apperr.NotFoundf("member not found in this family")
	}
	if member.UserID == requesterID {
		return apperr.Conflictf("you cannot remove yourself from the family")
	}
	if member.IsAdmin() {
		admins, err := s.memberRepo.CountAdmins(familyID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return apperr.Conflictf("cannot remove the last admin; promote another member first")
		}
	}

	return s.memberRepo.Remove(member)
}

// InviteByEmail mails the family's invite code to the given address. Any
// member may invite; people who already belong are rejected.
func (s *FamilyService) InviteByEmail(requesterID, familyID uint, req InviteByEmailRequest) error {
	if _, err := s.requireMember(familyID, requesterID); err != nil {
		return err
	}

	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return apperr.NotFoundf("family not found")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		member, err := s.memberRepo.FindMember(familyID, existing.ID)
		if err != nil {
			return err
		}
		if member != nil {
			return apperr.Conflictf("this person is already a member of the family")
		}
	}

	subject := fmt.Sprintf("You're invited to join %s", family.Name)
	body := inviteEmailBody(family.Name, family.InviteCode)
	if err := s.mailer.Send(email, subject, body); err != nil {
		logger.L.Error("InviteByEmail: failed to send invitation",
			zap.Uint("familyID", familyID), zap.String("email", email), zap.Error(err))
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}

func inviteEmailBody(familyName, inviteCode string) string {
	joinURL := fmt.Sprintf("%s/join?code=%s", config.GlobalConfig.App.BaseURL, inviteCode)
	return fmt.Sprintf(
		`<p>You have been invited to join the family <strong>%s</strong>.</p>`+
			`<p>Your invite code is <strong>%s</strong>.</p>`+
			`<p><a href="%s">Click here to join</a>, or enter the code after signing up.</p>`,
		familyName, inviteCode, joinURL)
}

func (s *FamilyService) requireMember(familyID, userID uint) (*model.FamilyMember, error) {
	member, err := s.memberRepo.FindMember(familyID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.Authorizationf("you are not a member of this family")
	}
	return member, nil
}

func (s *FamilyService) requireAdmin(familyID, userID uint) error {
	member, err := s.requireMember(familyID, userID)
	if err != nil {
		return err
	}
	if !member.IsAdmin() {
		return apperr.Authorizationf("only a family admin can do this")
	}
	return nil
}
